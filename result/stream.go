// File: result/stream.go
// Author: momentics <momentics@gmail.com>
//
// Stream implements the result stream (C9, spec section 4.9): created by
// running a statement, it enqueues RUN and either PULL_ALL or DISCARD_ALL
// immediately, then lazily drives session.Sync as callers fetch/peek
// records. It attaches to the session as a Job (C8) so that reset() or a
// session failure unblocks every pending wait with the right error.
package result

import (
	"sync"

	"github.com/momentics/bolt-core/api"
	"github.com/momentics/bolt-core/meta"
	"github.com/momentics/bolt-core/pool"
	"github.com/momentics/bolt-core/session"
	"github.com/momentics/bolt-core/values"
)

// Stream is the caller-visible handle returned by Run. It is not safe for
// concurrent use except where the owning Session itself allows concurrency
// (reset() from a second goroutine; spec section 5).
type Stream struct {
	mu sync.Mutex

	sess  *session.Session
	arena *pool.Arena // stream-level scratch; nothing is registered against it

	refcount int

	starting  bool // true until RUN's response has been seen
	streaming bool // true while PULL_ALL is still expected to deliver more

	fields []string

	head, tail      *record
	depth           int // records currently buffered (not yet fetched)
	totalSeen       int // records ever appended, including already-fetched
	awaitingRecords int32

	lastFetched *record

	failed         bool
	failErr        error
	failureDetails meta.FailureDetails

	availableAfter int64
	consumedAfter  int64
	statementType  meta.StatementType
	stats          meta.UpdateCounts
	hasStats       bool
	plan           *meta.PlanNode
	profile        *meta.PlanNode

	detached bool
	closed   bool
}

// Run enqueues RUN followed by either PULL_ALL (pull=true) or DISCARD_ALL
// (pull=false) and returns the stream that will be fed by their responses.
// arena owns the stream-level scratch (nothing is registered against it
// yet, but it is the hook point for future pooled field-name storage);
// each buffered record gets its own per-record arena (spec section 4.9).
func Run(sess *session.Session, arena *pool.Arena, statement string, params values.Value, pull bool) (*Stream, error) {
	st := &Stream{
		sess:      sess,
		arena:     arena,
		refcount:  3, // caller's handle + the RUN request + the PULL_ALL/DISCARD_ALL request
		starting:  true,
		streaming: pull,
	}

	sess.AttachJob(st)

	if err := sess.Run(arena, statement, params, st.runCallback, nil); err != nil {
		sess.DetachJob(st)
		return nil, err
	}
	if pull {
		if err := sess.PullAll(arena, st.pullAllCallback, nil); err != nil {
			sess.DetachJob(st)
			return nil, err
		}
	} else {
		if err := sess.DiscardAll(arena, st.pullAllCallback, nil); err != nil {
			sess.DetachJob(st)
			return nil, err
		}
	}
	return st, nil
}

// release decrements refcount and, once it reaches zero, drains every
// buffered record and detaches from the session.
func (st *Stream) release() {
	st.refcount--
	if st.refcount > 0 {
		return
	}
	for r := st.head; r != nil; {
		next := r.next
		r.arena.DrainTo(0)
		r = next
	}
	st.head, st.tail = nil, nil
	if st.lastFetched != nil {
		st.lastFetched.arena.DrainTo(0)
		st.lastFetched = nil
	}
	if !st.detached {
		st.detached = true
		st.sess.DetachJob(st)
	}
}

// OnReset implements session.Job: a reset() mid-stream surfaces
// ErrSessionReset on every pending and future wait.
func (st *Stream) OnReset() {
	st.mu.Lock()
	defer st.mu.Unlock()
	if st.failErr == nil {
		st.failed = true
		st.failErr = api.ErrSessionReset
	}
	st.starting = false
	st.streaming = false
}

// OnSessionFailed implements session.Job: a fatal protocol/transport error
// unblocks every pending wait with the session's failure.
func (st *Stream) OnSessionFailed(err error) {
	st.mu.Lock()
	defer st.mu.Unlock()
	if st.failErr == nil {
		st.failed = true
		st.failErr = err
	}
	st.starting = false
	st.streaming = false
}

// CheckFailure returns the recorded failure, if any (spec section 4.9).
func (st *Stream) CheckFailure() error {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.failErr
}

// ErrorCode returns the *api.Error code of the recorded failure, or
// ErrCodeNone if the stream has not failed.
func (st *Stream) ErrorCode() api.ErrorCode {
	st.mu.Lock()
	defer st.mu.Unlock()
	if boltErr, ok := st.failErr.(*api.Error); ok {
		return boltErr.Code
	}
	return api.ErrCodeNone
}

// ErrorMessage returns the recorded failure's message, or "" if none.
func (st *Stream) ErrorMessage() string {
	st.mu.Lock()
	defer st.mu.Unlock()
	if st.failErr == nil {
		return ""
	}
	return st.failErr.Error()
}

// FailureDetails returns the typed FAILURE metadata extracted for a
// statement error, and false if the stream has not failed that way.
func (st *Stream) FailureDetails() (meta.FailureDetails, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.failureDetails, st.failureDetails.Code != ""
}

// blockUntilStarted waits (driving Sync) until RUN's response has arrived.
func (st *Stream) blockUntilStarted() error {
	st.mu.Lock()
	for st.starting {
		st.awaitingRecords = 1
		st.mu.Unlock()
		if err := st.sess.Sync(&st.awaitingRecords); err != nil {
			st.mu.Lock()
			if st.failErr == nil {
				st.failed = true
				st.failErr = err
			}
			st.starting = false
			break
		}
		st.mu.Lock()
	}
	err := st.failErr
	st.mu.Unlock()
	return err
}

// NFields blocks until RUN responds and returns the number of fields.
func (st *Stream) NFields() (int, error) {
	if err := st.blockUntilStarted(); err != nil {
		return 0, err
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.fields), nil
}

// FieldName blocks until RUN responds and returns the name of field i.
func (st *Stream) FieldName(i int) (string, error) {
	if err := st.blockUntilStarted(); err != nil {
		return "", err
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	if i < 0 || i >= len(st.fields) {
		return "", api.NewError(api.ErrCodeInvalidArgument, "result: field index out of range")
	}
	return st.fields[i], nil
}

// Count returns the number of records seen so far (fetched plus buffered).
func (st *Stream) Count() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.totalSeen
}

// AvailableAfter returns RUN's result_available_after timing.
func (st *Stream) AvailableAfter() int64 {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.availableAfter
}

// ConsumedAfter returns PULL_ALL's result_consumed_after timing; valid
// only once streaming has finished.
func (st *Stream) ConsumedAfter() int64 {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.consumedAfter
}

// StatementType returns the statement's classified effect.
func (st *Stream) StatementType() meta.StatementType {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.statementType
}

// StatementPlan returns the EXPLAIN plan if present, else the PROFILE
// tree if present, else nil.
func (st *Stream) StatementPlan() *meta.PlanNode {
	st.mu.Lock()
	defer st.mu.Unlock()
	if st.plan != nil {
		return st.plan
	}
	return st.profile
}

// UpdateCounts returns the 11 named update counters and whether a stats
// map was present in PULL_ALL's SUCCESS metadata at all.
func (st *Stream) UpdateCounts() (meta.UpdateCounts, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.stats, st.hasStats
}

// Close drops the caller's reference to the stream (spec section 4.9).
// Once the RUN and PULL_ALL/DISCARD_ALL responses have also been handled,
// every retained record is released and the stream detaches from the
// session. Calling Close again has no further effect.
func (st *Stream) Close() error {
	st.mu.Lock()
	defer st.mu.Unlock()
	if st.closed {
		return nil
	}
	st.closed = true
	st.release()
	return nil
}
