// Package ringio implements the buffering I/O layer (spec section 4.5): a
// ring buffer of configurable capacity fronting each direction of an
// api.ByteStream. Reads drain the receive ring first, then perform one
// vectored read into both the caller's destination and the ring's free
// region; writes that fit in free space are buffered, otherwise the
// buffered prefix and new payload go out together in one vectored write.
//
// The ring itself is adapted from the teacher's lock-free pool.RingBuffer
// (pool/ring.go): same head/tail/mask shape, but single-owner — this layer
// is driven exclusively from inside session.Session.Sync (spec section 5),
// so the atomics the teacher needs for cross-goroutine handoff are dropped
// in favor of plain ints.
//
// Author: momentics <momentics@gmail.com>
package ringio

import "github.com/momentics/bolt-core/api"

type byteRing struct {
	data  []byte
	head  int // index of oldest unread byte
	count int
}

func newByteRing(capacity int) *byteRing {
	return &byteRing{data: make([]byte, capacity)}
}

func (r *byteRing) cap() int  { return len(r.data) }
func (r *byteRing) free() int { return len(r.data) - r.count }

// push copies as many bytes from p as fit, returns the number copied.
func (r *byteRing) push(p []byte) int {
	n := len(p)
	if n > r.free() {
		n = r.free()
	}
	tail := (r.head + r.count) % r.cap()
	for i := 0; i < n; i++ {
		r.data[(tail+i)%r.cap()] = p[i]
	}
	r.count += n
	return n
}

// pop copies as many bytes as fit into p, returns the number copied.
func (r *byteRing) pop(p []byte) int {
	n := len(p)
	if n > r.count {
		n = r.count
	}
	for i := 0; i < n; i++ {
		p[i] = r.data[(r.head+i)%r.cap()]
	}
	r.head = (r.head + n) % r.cap()
	r.count -= n
	return n
}

// freeRegion returns up to two contiguous slices covering the ring's free
// space, suitable as vectored-read destinations.
func (r *byteRing) freeRegion() [][]byte {
	free := r.free()
	if free == 0 {
		return nil
	}
	tail := (r.head + r.count) % r.cap()
	if tail+free <= r.cap() {
		return [][]byte{r.data[tail : tail+free]}
	}
	return [][]byte{r.data[tail:], r.data[:free-(r.cap()-tail)]}
}

func (r *byteRing) commitWrite(n int) { r.count += n }

const (
	// DefaultCapacity matches the teacher's default channel depth order of
	// magnitude (pool/base_bufferpool.go uses 1024-entry channels); a byte
	// ring at this size comfortably holds several chunked Bolt messages.
	DefaultCapacity = 64 * 1024
)

// RingIO fronts an api.ByteStream with send/receive rings.
type RingIO struct {
	stream api.ByteStream
	send   *byteRing
	recv   *byteRing
}

// New wraps stream with send/receive rings of the given capacity.
// capacity <= 0 selects DefaultCapacity.
func New(stream api.ByteStream, capacity int) *RingIO {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &RingIO{stream: stream, send: newByteRing(capacity), recv: newByteRing(capacity)}
}

// Write buffers p if it fits in the send ring's free space; otherwise the
// ring's buffered prefix and p are written to the stream in one vectored
// call and the ring is left empty.
func (rw *RingIO) Write(p []byte) (int, error) {
	if len(p) <= rw.send.free() {
		rw.send.push(p)
		return len(p), nil
	}
	pending := make([]byte, rw.send.count)
	rw.send.pop(pending)
	n, err := rw.stream.WriteVec([][]byte{pending, p})
	if err != nil {
		// Leave the ring in a consistent state: anything not confirmed
		// written goes back to the front of the buffer.
		if n < len(pending) {
			rw.send.push(pending[n:])
		} else {
			rem := n - len(pending)
			if rem < len(p) {
				rw.send.push(p[rem:])
			}
		}
		return max(0, n-len(pending)), err
	}
	return len(p), nil
}

// Flush forces any buffered send bytes out to the stream.
func (rw *RingIO) Flush() error {
	if rw.send.count == 0 {
		return rw.stream.Flush()
	}
	pending := make([]byte, rw.send.count)
	rw.send.pop(pending)
	if _, err := rw.stream.WriteVec([][]byte{pending}); err != nil {
		rw.send.push(pending)
		return err
	}
	return rw.stream.Flush()
}

// Read first drains the receive ring into p, then performs one vectored
// read into both the remainder of p and the ring's free region.
func (rw *RingIO) Read(p []byte) (int, error) {
	n := rw.recv.pop(p)
	if n == len(p) {
		return n, nil
	}
	dest := [][]byte{p[n:]}
	free := rw.recv.freeRegion()
	dest = append(dest, free...)
	got, err := rw.stream.ReadVec(dest)
	if got <= 0 {
		return n, err
	}
	remaining := len(p) - n
	if got <= remaining {
		n += got
		return n, err
	}
	// Bytes landed in the ring's free region too; account for them.
	n += remaining
	rw.recv.commitWrite(got - remaining)
	return n, err
}

// Close releases the underlying stream.
func (rw *RingIO) Close() error { return rw.stream.Close() }

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
