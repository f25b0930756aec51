// File: pool/bufferpool.go
// Author: momentics <momentics@gmail.com>
//
// ByteBufferPool hands out size-classed []byte buffers. The ring-buffered
// I/O layer (C5) does not use it: ringio allocates its rings directly.
// Adapted from the teacher's channel-backed baseBufferPool,
// dropping the NUMA dimension: a Bolt session multiplexes one connection,
// not the NUMA-sharded fleet hioload-ws's WebSocket listeners manage.
package pool

import (
	"sync"
	"sync/atomic"

	"github.com/momentics/bolt-core/api"
)

const defaultChanCapacity = 256

// ByteBufferPool reuses []byte buffers by rounding up to the nearest
// power-of-two size class.
type ByteBufferPool struct {
	mu    sync.Mutex
	pools map[int]chan api.Buffer

	totalAlloc atomic.Int64
	totalFree  atomic.Int64
}

// NewByteBufferPool creates an empty pool; classes are created lazily.
func NewByteBufferPool() *ByteBufferPool {
	return &ByteBufferPool{pools: make(map[int]chan api.Buffer)}
}

func classFor(size int) int {
	c := 256
	for c < size {
		c <<= 1
	}
	return c
}

func (p *ByteBufferPool) channel(class int) chan api.Buffer {
	p.mu.Lock()
	defer p.mu.Unlock()
	ch, ok := p.pools[class]
	if !ok {
		ch = make(chan api.Buffer, defaultChanCapacity)
		p.pools[class] = ch
	}
	return ch
}

// Get returns a buffer of at least size bytes.
func (p *ByteBufferPool) Get(size int) api.Buffer {
	class := classFor(size)
	ch := p.channel(class)
	select {
	case buf := <-ch:
		return api.Buffer{Data: buf.Data[:size], Pool: p, Class: class}
	default:
		p.totalAlloc.Add(1)
		return api.Buffer{Data: make([]byte, size, class), Pool: p, Class: class}
	}
}

// Put returns a buffer to its size class, or discards it if the class
// channel is saturated.
func (p *ByteBufferPool) Put(b api.Buffer) {
	if b.Class == 0 {
		return
	}
	ch := p.channel(b.Class)
	full := b.Data[:0:cap(b.Data)]
	select {
	case ch <- api.Buffer{Data: full[:cap(full)], Pool: p, Class: b.Class}:
		p.totalFree.Add(1)
	default:
	}
}

// Stats reports pool-wide allocation counters.
func (p *ByteBufferPool) Stats() api.BufferPoolStats {
	alloc := p.totalAlloc.Load()
	free := p.totalFree.Load()
	return api.BufferPoolStats{TotalAlloc: alloc, TotalFree: free, InUse: alloc - free}
}

var _ api.BufferPool = (*ByteBufferPool)(nil)
