package session

import (
	"github.com/momentics/bolt-core/message"
	"github.com/momentics/bolt-core/pool"
	"github.com/momentics/bolt-core/values"
)

// Run enqueues a RUN request (spec section 4.8): statement text plus its
// parameter Map. arena is stored on the Request; the session's response
// decoder is built without an arena, so parsing the SUCCESS/FAILURE
// metadata map allocates nothing from it.
func (s *Session) Run(arena *pool.Arena, statement string, params values.Value, cb Callback, cdata any) error {
	return s.enqueue(newRequest(message.SigRun, []values.Value{values.String(statement), params}, arena, cb, cdata))
}

// PullAll enqueues a PULL_ALL request, streaming every pending record.
func (s *Session) PullAll(arena *pool.Arena, cb Callback, cdata any) error {
	return s.enqueue(newRequest(message.SigPullAll, nil, arena, cb, cdata))
}

// DiscardAll enqueues a DISCARD_ALL request, discarding the pending result
// without transporting it to the caller.
func (s *Session) DiscardAll(arena *pool.Arena, cb Callback, cdata any) error {
	return s.enqueue(newRequest(message.SigDiscardAll, nil, arena, cb, cdata))
}

// ackFailure enqueues ACK_FAILURE, clearing the server's IGNORE state
// after a failure cascade settles (spec section 4.8/7). It is driven
// synchronously from inside Sync, never by caller code directly.
func (s *Session) ackFailure() *Request {
	return newRequest(message.SigAckFailure, nil, nil, func(cdata any, sig message.Signature, fields []values.Value) (CallbackResult, error) {
		return Done, nil
	}, nil)
}
