// File: chunking/encoder.go
// Author: momentics <momentics@gmail.com>
package chunking

import (
	"encoding/binary"
	"errors"
	"io"
)

// Encoder buffers outgoing message bytes and splits them into chunks no
// larger than MaxChunkSize, flushing early once MinChunkSize is reached so
// large messages start transmitting before they are fully built.
type Encoder struct {
	w            io.Writer
	minChunkSize int
	maxChunkSize int
	buf          []byte
	hdr          [2]byte
}

// NewEncoder wraps w. minChunkSize and maxChunkSize configure the flush
// thresholds of spec section 4.4; maxChunkSize is clamped to MaxChunkSize.
func NewEncoder(w io.Writer, minChunkSize, maxChunkSize int) *Encoder {
	if maxChunkSize <= 0 || maxChunkSize > MaxChunkSize {
		maxChunkSize = MaxChunkSize
	}
	if minChunkSize <= 0 || minChunkSize > maxChunkSize {
		minChunkSize = maxChunkSize
	}
	return &Encoder{w: w, minChunkSize: minChunkSize, maxChunkSize: maxChunkSize}
}

// Write implements io.Writer, buffering p and flushing whole chunks as
// thresholds are crossed. It never blocks waiting for a message boundary.
func (e *Encoder) Write(p []byte) (int, error) {
	total := len(p)
	e.buf = append(e.buf, p...)
	for len(e.buf) >= e.maxChunkSize {
		if err := e.flushChunk(e.maxChunkSize); err != nil {
			return total - len(p), err
		}
	}
	if len(e.buf) >= e.minChunkSize {
		if err := e.flushChunk(len(e.buf)); err != nil {
			return total, err
		}
	}
	return total, nil
}

func (e *Encoder) flushChunk(n int) error {
	if n > MaxChunkSize {
		return errors.New("chunking: chunk size exceeds protocol maximum")
	}
	binary.BigEndian.PutUint16(e.hdr[:], uint16(n))
	if _, err := e.w.Write(e.hdr[:]); err != nil {
		return err
	}
	if n > 0 {
		if _, err := e.w.Write(e.buf[:n]); err != nil {
			return err
		}
	}
	e.buf = e.buf[n:]
	return nil
}

// EndMessage flushes any remaining buffered bytes as a final chunk (unless
// empty) and always terminates the message with an empty chunk.
func (e *Encoder) EndMessage() error {
	if len(e.buf) > 0 {
		if err := e.flushChunk(len(e.buf)); err != nil {
			return err
		}
	}
	binary.BigEndian.PutUint16(e.hdr[:], 0)
	_, err := e.w.Write(e.hdr[:])
	e.buf = e.buf[:0]
	return err
}
