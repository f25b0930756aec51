// Package chunking implements the Bolt chunked framing layer (spec section
// 4.4 / 6): a message is a sequence of (u16 size, size bytes) chunks,
// terminated by an empty chunk. The chunk size field is big-endian, the
// same encoding the teacher's WebSocket frame codec uses for its extended
// length fields (protocol/frame.go, protocol/frame_codec.go).
//
// Author: momentics <momentics@gmail.com>
package chunking

// MaxChunkSize is the largest payload a single chunk may carry (u16 max).
const MaxChunkSize = 65535

// DefaultMinChunkSize is the threshold at which the encoder opportunistically
// flushes a partially filled chunk rather than waiting for the message to end.
const DefaultMinChunkSize = 8192
