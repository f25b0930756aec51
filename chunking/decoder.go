// File: chunking/decoder.go
// Author: momentics <momentics@gmail.com>
package chunking

import (
	"encoding/binary"
	"io"
)

// Decoder reassembles chunks into complete messages.
type Decoder struct {
	r   io.Reader
	hdr [2]byte
}

// NewDecoder wraps r.
func NewDecoder(r io.Reader) *Decoder { return &Decoder{r: r} }

// ReadMessage reads chunks until an empty chunk is seen and returns their
// concatenation. A zero-length, non-nil slice is returned for a message
// consisting of a single empty chunk (e.g. server heartbeats, if any).
func (d *Decoder) ReadMessage() ([]byte, error) {
	var out []byte
	for {
		if _, err := io.ReadFull(d.r, d.hdr[:]); err != nil {
			return nil, err
		}
		size := binary.BigEndian.Uint16(d.hdr[:])
		if size == 0 {
			if out == nil {
				out = []byte{}
			}
			return out, nil
		}
		chunk := make([]byte, size)
		if _, err := io.ReadFull(d.r, chunk); err != nil {
			return nil, err
		}
		out = append(out, chunk...)
	}
}
