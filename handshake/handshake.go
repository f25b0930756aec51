// Package handshake implements the Bolt connection preamble (spec section
// 6, normative): the client writes a 4-byte magic followed by four
// big-endian u32 candidate versions; the server replies with one chosen
// u32 version, or 0 meaning no agreed version, in which case the
// connection must be closed. This runs once, directly over the caller's
// api.ByteStream, before the chunked framing layer (C4) or anything above
// it ever sees a byte.
//
// Grounded on the teacher's protocol/frame.go big-endian header encoding
// (same encoding/binary.BigEndian idiom), generalized from a single WS
// opcode/length header to the fixed 5-word handshake vector.
//
// Author: momentics <momentics@gmail.com>
package handshake

import (
	"encoding/binary"

	"github.com/momentics/bolt-core/api"
)

// Magic is the 4-byte preamble identifying a Bolt connection.
var Magic = [4]byte{0x60, 0x60, 0xB0, 0x17}

// NoAgreedVersion is the server's reply when none of the client's
// candidates are acceptable; the caller must close the connection.
const NoAgreedVersion uint32 = 0

// DefaultCandidates offers protocol v2 before v1, padded to four slots
// with 0 (spec section 6 requires exactly four u32 candidates).
func DefaultCandidates() [4]uint32 {
	return [4]uint32{2, 1, 0, 0}
}

// Negotiate writes the magic and candidate versions, then reads back the
// server's chosen version. It returns an *api.Error with ErrCodeProtocol if
// the server replies 0; the caller must Close the underlying stream in that
// case.
func Negotiate(stream api.ByteStream, candidates [4]uint32) (uint32, error) {
	buf := make([]byte, 4+4*4)
	copy(buf[0:4], Magic[:])
	for i, v := range candidates {
		binary.BigEndian.PutUint32(buf[4+i*4:8+i*4], v)
	}
	if err := writeAll(stream, buf); err != nil {
		return 0, api.NewError(api.ErrCodeIO, "handshake: write failed: "+err.Error())
	}
	if err := stream.Flush(); err != nil {
		return 0, api.NewError(api.ErrCodeIO, "handshake: flush failed: "+err.Error())
	}

	reply := make([]byte, 4)
	if err := readAll(stream, reply); err != nil {
		return 0, api.NewError(api.ErrCodeConnectionClosed, "handshake: read failed: "+err.Error())
	}
	chosen := binary.BigEndian.Uint32(reply)
	if chosen == NoAgreedVersion {
		return 0, api.NewError(api.ErrCodeProtocol, "handshake: server rejected all candidate versions").
			WithContext("candidates", candidates)
	}
	return chosen, nil
}

func writeAll(stream api.ByteStream, buf []byte) error {
	for len(buf) > 0 {
		n, err := stream.Write(buf)
		if err != nil {
			return err
		}
		buf = buf[n:]
	}
	return nil
}

func readAll(stream api.ByteStream, buf []byte) error {
	for len(buf) > 0 {
		n, err := stream.Read(buf)
		if n > 0 {
			buf = buf[n:]
		}
		if err != nil {
			return err
		}
	}
	return nil
}
