// File: api/stream.go
// Author: momentics <momentics@gmail.com>
//
// ByteStream is the collaborator interface consumed by the core (spec
// section 6): a byte-oriented duplex stream. Construction (dialing, TLS
// handshake) is explicitly out of scope; callers hand the core an already
// connected stream.
package api

// ByteStream is a full-duplex byte stream with vectored I/O support, as
// required by the buffering layer (C5). Implementations may return short
// reads/writes. No layer retries an interrupted call: ringio hands any
// error from the stream straight back to its caller.
type ByteStream interface {
	Read(p []byte) (n int, err error)
	Write(p []byte) (n int, err error)
	// ReadVec reads into multiple buffers in one syscall-equivalent operation.
	ReadVec(bufs [][]byte) (n int, err error)
	// WriteVec writes multiple buffers in one syscall-equivalent operation.
	WriteVec(bufs [][]byte) (n int, err error)
	Flush() error
	Close() error
}
