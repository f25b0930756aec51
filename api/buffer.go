// File: api/buffer.go
// Author: momentics <momentics@gmail.com>
package api

// Buffer is a zero-copy memory slice handed out by a BufferPool. It is a
// struct rather than an interface to avoid interface boxing on the hot
// send/receive path (mirrors the teacher's pool/api.Buffer design).
type Buffer struct {
	Data  []byte
	Pool  Releaser
	Class int
}

// Releaser decouples Buffer.Release from a concrete pool type.
type Releaser interface {
	Put(Buffer)
}

// Bytes returns the full byte slice backing this Buffer.
func (b Buffer) Bytes() []byte { return b.Data }

// Slice returns a new Buffer view sharing the same underlying memory.
func (b Buffer) Slice(from, to int) Buffer {
	if from < 0 || to > len(b.Data) || from > to {
		return Buffer{Class: b.Class, Pool: b.Pool}
	}
	return Buffer{Data: b.Data[from:to], Pool: b.Pool, Class: b.Class}
}

// Release returns the buffer to its owning pool, if any.
func (b Buffer) Release() {
	if b.Pool != nil {
		b.Pool.Put(b)
	}
}

// Capacity returns the capacity of the underlying slice.
func (b Buffer) Capacity() int { return cap(b.Data) }

// BufferPool hands out reusable byte buffers sized in classes, as accepted
// by packstream.Reader for decoded payload bytes. The ring-buffered I/O
// layer (C5) does not draw its send/receive regions from a BufferPool.
type BufferPool interface {
	Get(size int) Buffer
	Put(b Buffer)
	Stats() BufferPoolStats
}

// BufferPoolStats summarizes pool usage as reported by BufferPool.Stats;
// nothing copies it into control.MetricsRegistry.
type BufferPoolStats struct {
	TotalAlloc int64
	TotalFree  int64
	InUse      int64
}
