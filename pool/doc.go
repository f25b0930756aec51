// File: pool/doc.go
// Package pool
// Author: momentics <momentics@gmail.com>
//
// Memory pool primitives for bolt-core: the per-request scratch Arena
// (spec section 4.1, backed by a sync.Pool block freelist), and the
// size-classed ByteBufferPool (ringio does not use it; it allocates its
// rings directly).
package pool
