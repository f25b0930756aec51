package session

import (
	"github.com/momentics/bolt-core/api"
	"github.com/momentics/bolt-core/control"
	"github.com/momentics/bolt-core/message"
)

// Sync drives I/O until the queue empties or *condition becomes 0,
// whichever comes first (spec section 4.8). It alternates between
// dispatching newly queued requests (up to cfg.MaxPipelinedRequests
// inflight) and receiving responses in FIFO order, matching each response
// to the queue head. condition may be nil, meaning "run until the queue
// empties".
//
// Returns nil on success. On error the queue is fully drained (every
// pending request's callback receives an IGNORED dispatch) and the
// session transitions to failed; subsequent calls return the same error
// immediately.
func (s *Session) Sync(condition *int32) error {
	if !s.processing.CompareAndSwap(false, true) {
		return api.NewError(api.ErrCodeProtocol, "session: concurrent Sync calls are not supported")
	}
	defer s.processing.Store(false)

	if failed, err := s.Failed(); failed {
		return err
	}

	for {
		if s.resetRequested.Load() {
			return s.doReset()
		}
		if err := s.sendPending(); err != nil {
			return s.fail(err)
		}
		if condition != nil && *condition == 0 {
			return nil
		}
		s.mu.Lock()
		empty := s.queue.Length() == 0
		s.mu.Unlock()
		if empty {
			return nil
		}
		if s.resetRequested.Load() {
			return s.doReset()
		}
		if err := s.receiveOne(); err != nil {
			return s.fail(err)
		}
	}
}

// sendPending writes every queued-but-unsent request up to the
// pipelining cap, then flushes so the server starts seeing them.
func (s *Session) sendPending() error {
	for {
		s.mu.Lock()
		if s.sent >= s.cfg.MaxPipelinedRequests || s.sent >= s.queue.Length() {
			s.mu.Unlock()
			break
		}
		req := s.queue.Get(s.sent).(*Request)
		s.sent++
		s.mu.Unlock()

		if err := s.writer.Write(message.New(req.Sig, req.Args...)); err != nil {
			return err
		}
		req.sent = true
		s.incrMetric(control.MetricRequestsSent, 1)
	}
	return s.ring.Flush()
}

// receiveOne reads the next response off the wire and dispatches it to
// the queue head, applying the failure-cascade rule (spec section 4.8/7):
// once a FAILURE is seen, every other response already inflight at that
// moment must be IGNORED, or the session is a protocol error.
func (s *Session) receiveOne() error {
	msg, err := s.reader.Read()
	if err != nil {
		return api.NewError(api.ErrCodeConnectionClosed, err.Error())
	}
	s.incrMetric(control.MetricResponsesRecv, 1)

	s.mu.Lock()
	if s.queue.Length() == 0 {
		s.mu.Unlock()
		return api.NewError(api.ErrCodeProtocol, "session: response received with no pending request")
	}
	head := s.queue.Peek().(*Request)
	cascading := s.cascading
	s.mu.Unlock()

	if cascading && msg.Sig != message.SigIgnored {
		return api.NewError(api.ErrCodeProtocol, "session: expected IGNORED during failure cascade, got "+msg.Sig.String())
	}
	if msg.Sig == message.SigFailure {
		s.incrMetric(control.MetricFailuresObserved, 1)
		s.beginCascade()
	}

	result, cbErr := head.Callback(head.CData, msg.Sig, msg.Fields)
	if cbErr != nil {
		return cbErr
	}

	switch result {
	case More:
		// Leave head in place; another response (e.g. RECORD before
		// PULL_ALL's terminal SUCCESS) is still expected for it.
	case Done:
		s.popHead()
		if cascading {
			if err := s.advanceCascade(); err != nil {
				return err
			}
		}
	case Error:
		return api.NewError(api.ErrCodeProtocol, "session: request callback reported an error")
	}
	return nil
}

func (s *Session) popHead() {
	s.mu.Lock()
	s.queue.Remove()
	if s.sent > 0 {
		s.sent--
	}
	s.mu.Unlock()
}

// beginCascade records that the remaining inflight-but-unanswered
// requests (everything sent except the one that just failed) must all be
// IGNORED before normal operation can resume.
func (s *Session) beginCascade() {
	s.mu.Lock()
	if !s.cascading {
		s.cascading = true
		s.cascadeRemaining = s.sent - 1
	}
	s.mu.Unlock()
}

// advanceCascade is called after popping a cascaded response's request;
// once the whole inflight batch at failure time has settled, the cascade
// ends and ACK_FAILURE is driven synchronously (spec section 4.8).
func (s *Session) advanceCascade() error {
	s.mu.Lock()
	if s.cascadeRemaining > 0 {
		s.cascadeRemaining--
	}
	done := s.cascadeRemaining == 0
	s.cascading = !done
	s.mu.Unlock()
	if done {
		return s.settleFailureCascade()
	}
	return nil
}

// settleFailureCascade enqueues and synchronously drives a single
// ACK_FAILURE exchange, clearing the server's IGNORE state so the session
// remains usable for subsequent statements (spec section 7).
func (s *Session) settleFailureCascade() error {
	req := s.ackFailure()
	s.mu.Lock()
	s.queue.Add(req)
	s.mu.Unlock()
	if err := s.writer.Write(message.New(req.Sig)); err != nil {
		return err
	}
	req.sent = true
	s.mu.Lock()
	s.sent++
	s.mu.Unlock()
	if err := s.ring.Flush(); err != nil {
		return err
	}
	return s.receiveOne()
}

// fail transitions the session to the terminal failed state, draining
// every pending request with an IGNORED dispatch and notifying attached
// jobs (spec section 7: protocol/transport errors are fatal).
func (s *Session) fail(cause error) error {
	s.mu.Lock()
	s.failed = true
	s.failErr = cause
	var drained []*Request
	for s.queue.Length() > 0 {
		drained = append(drained, s.queue.Remove().(*Request))
	}
	s.sent = 0
	s.cascading = false
	s.cascadeRemaining = 0
	s.mu.Unlock()

	for _, req := range drained {
		_, _ = req.Callback(req.CData, message.SigIgnored, nil)
	}
	s.notifyFailed(cause)
	return cause
}
