// Package message implements the Bolt message layer (spec section 4.6): a
// typed request/response vocabulary layered on top of packstream structures
// (C3) carried inside chunked frames (C4). Every Bolt message is a
// PackStream struct whose signature byte selects its meaning; this package
// is the table mapping those signatures onto the request/response shapes
// the session engine (C8) drives.
//
// Grounded on the teacher's protocol/frame.go, which plays the analogous
// role of naming the WebSocket opcode table on top of its frame codec.
//
// Author: momentics <momentics@gmail.com>
package message

import (
	"io"

	"github.com/momentics/bolt-core/api"
	"github.com/momentics/bolt-core/chunking"
	"github.com/momentics/bolt-core/packstream"
	"github.com/momentics/bolt-core/pool"
	"github.com/momentics/bolt-core/values"
)

// Signature identifies a Bolt message's meaning (spec section 4.6 table).
type Signature byte

const (
	SigInit       Signature = 0x01
	SigAckFailure Signature = 0x0E
	SigReset      Signature = 0x0F
	SigRun        Signature = 0x10
	SigDiscardAll Signature = 0x2F
	SigPullAll    Signature = 0x3F
	SigSuccess    Signature = 0x70
	SigRecord     Signature = 0x71
	SigIgnored    Signature = 0x7E
	SigFailure    Signature = 0x7F
)

func (s Signature) String() string {
	switch s {
	case SigInit:
		return "INIT"
	case SigAckFailure:
		return "ACK_FAILURE"
	case SigReset:
		return "RESET"
	case SigRun:
		return "RUN"
	case SigDiscardAll:
		return "DISCARD_ALL"
	case SigPullAll:
		return "PULL_ALL"
	case SigSuccess:
		return "SUCCESS"
	case SigRecord:
		return "RECORD"
	case SigIgnored:
		return "IGNORED"
	case SigFailure:
		return "FAILURE"
	default:
		return "UNKNOWN"
	}
}

// IsResponse reports whether sig names one of the four response messages.
func (s Signature) IsResponse() bool {
	switch s {
	case SigSuccess, SigRecord, SigIgnored, SigFailure:
		return true
	default:
		return false
	}
}

// Message is a single Bolt protocol message: a tagged struct value whose
// signature selects its field layout. It is the wire-layer analogue of
// values.Value's graph-typed structs (Node/Relationship/Path) — those are
// struct values the session carries transparently inside RECORD fields,
// while Message is the envelope the session itself interprets.
type Message struct {
	Sig    Signature
	Fields []values.Value
}

// New builds a message from its signature and fields.
func New(sig Signature, fields ...values.Value) Message {
	return Message{Sig: sig, Fields: fields}
}

// Init builds an INIT request (spec section 4.6 / 5): client_id and an auth
// token map of {scheme, principal, credentials, ...}.
func Init(clientID string, authToken values.Value) Message {
	return New(SigInit, values.String(clientID), authToken)
}

// Run builds a RUN request carrying a statement and its parameter map.
func Run(statement string, params values.Value) Message {
	return New(SigRun, values.String(statement), params)
}

// PullAll builds a PULL_ALL request.
func PullAll() Message { return New(SigPullAll) }

// DiscardAll builds a DISCARD_ALL request.
func DiscardAll() Message { return New(SigDiscardAll) }

// AckFailure builds an ACK_FAILURE request.
func AckFailure() Message { return New(SigAckFailure) }

// Reset builds a RESET request.
func Reset() Message { return New(SigReset) }

// Writer encodes messages onto a chunked, PackStream-framed stream.
type Writer struct {
	chunkEnc *chunking.Encoder
	psEnc    *packstream.Writer
}

// NewWriter builds a message writer over an already-connected byte stream,
// buffering chunk headers per the min/max sizes configured on chunkEnc.
func NewWriter(chunkEnc *chunking.Encoder) *Writer {
	return &Writer{chunkEnc: chunkEnc, psEnc: packstream.NewWriter(chunkEnc)}
}

// Write encodes m as a single PackStream struct and terminates the chunked
// message that carries it.
func (w *Writer) Write(m Message) error {
	v := values.Struct(byte(m.Sig), m.Fields)
	if err := w.psEnc.WriteValue(v); err != nil {
		return err
	}
	return w.chunkEnc.EndMessage()
}

// Reader decodes messages from a chunked, PackStream-framed stream.
type Reader struct {
	chunkDec *chunking.Decoder
	arena    *pool.Arena
	bufPool  api.BufferPool
}

// NewReader builds a message reader. arena/bufPool may be nil, in which
// case decoded payload buffers are ordinary garbage-collected allocations.
func NewReader(chunkDec *chunking.Decoder, arena *pool.Arena, bufPool api.BufferPool) *Reader {
	return &Reader{chunkDec: chunkDec, arena: arena, bufPool: bufPool}
}

// Read reassembles the next whole message and decodes its single top-level
// PackStream struct into a Message.
func (r *Reader) Read() (Message, error) {
	raw, err := r.chunkDec.ReadMessage()
	if err != nil {
		return Message{}, err
	}
	psReader := packstream.NewReader(&byteReader{raw}, r.arena, r.bufPool)
	v, err := psReader.ReadValue()
	if err != nil {
		return Message{}, err
	}
	if v.Kind() != values.KindStruct {
		return Message{}, &api.Error{Code: api.ErrCodeProtocol, Message: "message body is not a struct"}
	}
	return Message{Sig: Signature(v.Signature()), Fields: v.Fields()}, nil
}

// byteReader adapts a []byte to io.Reader without pulling in bytes.Reader's
// seek/len API surface that packstream.Reader never needs.
type byteReader struct{ b []byte }

func (r *byteReader) Read(p []byte) (int, error) {
	if len(r.b) == 0 {
		return 0, io.EOF
	}
	n := copy(p, r.b)
	r.b = r.b[n:]
	return n, nil
}
