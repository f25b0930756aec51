// File: pool/arena.go
// Author: momentics <momentics@gmail.com>
//
// Arena implements the memory pool contract of spec section 4.1: an
// append-only registry of owned resources, drained in reverse order down
// to a given depth. In a garbage-collected target the "owned pointer" the
// original registers is replaced by a destructor closure (design note in
// spec section 9); draining an arena releases whatever those closures
// captured — typically a pooled []byte handed back to a BufferPool.
//
// Layout mirrors the source design: a small inline "debounce" region
// absorbs the common case of a handful of allocations per request without
// touching the heap-allocated block list; once it fills, entries spill
// into growable blocks sized by blockSize.
package pool

import "github.com/momentics/bolt-core/api"

const debounceSize = 8

// dtor is the registered cleanup for one arena entry.
type dtor func()

type block struct {
	entries []dtor
	next    *block
}

// blockFreelist reuses drained blocks across arenas via a sync.Pool,
// avoiding a fresh slice allocation every time a request's scratch arena
// spills past its inline debounce region. Adapted from the teacher's
// generic SyncPool wrapper (pool/objpool.go).
var blockFreelist = NewSyncPool(func() *block { return &block{} })

func getBlock(blockSize int) *block {
	b := blockFreelist.Get()
	if cap(b.entries) < blockSize {
		b.entries = make([]dtor, 0, blockSize)
	} else {
		b.entries = b.entries[:0]
	}
	b.next = nil
	return b
}

func putBlock(b *block) {
	b.entries = b.entries[:0]
	b.next = nil
	blockFreelist.Put(b)
}

// Arena is a single-owner, append-only scratch allocator. It is not safe
// for concurrent use; callers serialize access the same way the session
// engine serializes access to its owning request (spec section 5).
type Arena struct {
	debounce  [debounceSize]dtor
	dCount    int
	blocks    *block // head of block list, most recently allocated first
	blockSize int
	depth     int
}

// DefaultBlockSize matches the teacher's default channel capacity order of
// magnitude for buffer pools, scaled down for per-request scratch use.
const DefaultBlockSize = 64

// NewArena constructs an arena with the given block size for blocks beyond
// the inline debounce region. blockSize <= 0 selects DefaultBlockSize.
func NewArena(blockSize int) *Arena {
	if blockSize <= 0 {
		blockSize = DefaultBlockSize
	}
	return &Arena{blockSize: blockSize}
}

// Add registers a cleanup function and returns the depth at which it was
// added. Depth is strictly monotonic between drains.
func (a *Arena) Add(cleanup func()) int {
	if a.dCount < debounceSize {
		a.debounce[a.dCount] = cleanup
		a.dCount++
		a.depth++
		return a.depth
	}
	cur := a.blocks
	if cur == nil || len(cur.entries) == a.blockSize {
		cur = getBlock(a.blockSize)
		cur.next = a.blocks
		a.blocks = cur
	}
	cur.entries = append(cur.entries, cleanup)
	a.depth++
	return a.depth
}

// AddBuffer registers a pooled buffer's release as the entry's cleanup and
// returns the buffer unchanged, for use inline at allocation sites.
func (a *Arena) AddBuffer(b api.Buffer) api.Buffer {
	a.Add(b.Release)
	return b
}

// Depth returns the current depth (number of live entries).
func (a *Arena) Depth() int { return a.depth }

// DrainTo releases every entry added at depth > d, in reverse (LIFO) order,
// and leaves the arena's depth at min(d, previous depth). Idempotent: a
// repeated drainTo at the same or deeper depth does nothing.
func (a *Arena) DrainTo(d int) {
	if d >= a.depth {
		return
	}
	if d < 0 {
		d = 0
	}
	remaining := a.depth - d
	// Drain spilled blocks first (they hold the most recently added
	// entries since each new block is pushed onto the head of the list).
	for remaining > 0 && a.blocks != nil {
		blk := a.blocks
		for len(blk.entries) > 0 && remaining > 0 {
			n := len(blk.entries) - 1
			if blk.entries[n] != nil {
				blk.entries[n]()
			}
			blk.entries = blk.entries[:n]
			remaining--
		}
		if len(blk.entries) == 0 {
			a.blocks = blk.next
			putBlock(blk)
		}
	}
	for remaining > 0 && a.dCount > 0 {
		a.dCount--
		if a.debounce[a.dCount] != nil {
			a.debounce[a.dCount]()
		}
		a.debounce[a.dCount] = nil
		remaining--
	}
	a.depth = d
}

// Merge appends src onto dst, preserving src's entries in the same release
// order they would have run in on their own, then empties src. Returns
// dst's new depth, which equals the sum of both arenas' prior depths.
func Merge(dst, src *Arena) int {
	if src.depth == 0 {
		return dst.depth
	}
	// Collect src's entries oldest-first by walking debounce then blocks
	// tail-to-head, then re-add them onto dst in the same order so dst's
	// LIFO drain order matches src's original LIFO drain order.
	ordered := make([]dtor, 0, src.depth)
	ordered = append(ordered, src.debounce[:src.dCount]...)
	var blocksOldestFirst []*block
	for b := src.blocks; b != nil; b = b.next {
		blocksOldestFirst = append(blocksOldestFirst, b)
	}
	for i := len(blocksOldestFirst) - 1; i >= 0; i-- {
		ordered = append(ordered, blocksOldestFirst[i].entries...)
	}

	for _, fn := range ordered {
		dst.Add(fn)
	}
	src.debounce = [debounceSize]dtor{}
	src.dCount = 0
	src.blocks = nil
	src.depth = 0
	return dst.depth
}
