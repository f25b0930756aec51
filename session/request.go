package session

import (
	"github.com/momentics/bolt-core/message"
	"github.com/momentics/bolt-core/pool"
	"github.com/momentics/bolt-core/values"
)

// CallbackResult is the three-valued return of a Request's Callback (spec
// section 4.8): the source's ">0 more, 0 terminal, <0 error" contract
// mapped onto a small Go enum (design note, spec section 9).
type CallbackResult int

const (
	// More indicates additional responses are expected for this request
	// (e.g. a RECORD before PULL_ALL's terminal SUCCESS/FAILURE).
	More CallbackResult = iota
	// Done indicates this response was terminal; the request is popped.
	Done
	// Error indicates a protocol violation; the session transitions to
	// failed and every pending request is drained with IGNORED.
	Error
)

// Callback is invoked once per response message dispatched to a Request.
// cdata is the opaque pointer the caller supplied at enqueue time.
type Callback func(cdata any, sig message.Signature, fields []values.Value) (CallbackResult, error)

// Request is one pending message (spec section 3): the signature and
// argument vector to send, the arena the caller handed in, and the
// callback that interprets its responses. The session decodes responses
// without an arena, so nothing is allocated from Arena while decoding.
type Request struct {
	Sig      message.Signature
	Args     []values.Value
	Arena    *pool.Arena
	Callback Callback
	CData    any

	sent bool
}

func newRequest(sig message.Signature, args []values.Value, arena *pool.Arena, cb Callback, cdata any) *Request {
	return &Request{Sig: sig, Args: args, Arena: arena, Callback: cb, CData: cdata}
}
