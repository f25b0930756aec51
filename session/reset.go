package session

import (
	"github.com/momentics/bolt-core/api"
	"github.com/momentics/bolt-core/control"
	"github.com/momentics/bolt-core/message"
)

// Reset is the cancellation primitive (spec section 5): it notifies every
// attached job immediately (so blocked waits surface SessionReset right
// away) and sets resetRequested, the one atomic a second goroutine may
// touch while another is inside Sync. If no goroutine currently holds
// the processing flag, Reset drives the RESET exchange itself; otherwise
// the goroutine inside Sync observes resetRequested at its next boundary
// and performs it there — reset() never writes to the wire concurrently
// with a Sync in progress.
func (s *Session) Reset() error {
	s.notifyReset()
	s.resetRequested.Store(true)
	if s.processing.CompareAndSwap(false, true) {
		defer s.processing.Store(false)
		return s.doReset()
	}
	return nil
}

// doReset discards the pending queue entirely, sends RESET, and awaits a
// single SUCCESS response (spec section 4.8). Must only be called by the
// goroutine holding the processing flag.
func (s *Session) doReset() error {
	s.mu.Lock()
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

	if err := s.writer.Write(message.Reset()); err != nil {
		return s.fail(err)
	}
	if err := s.ring.Flush(); err != nil {
		return s.fail(err)
	}
	s.incrMetric(control.MetricResets, 1)

	msg, err := s.reader.Read()
	if err != nil {
		return s.fail(api.NewError(api.ErrCodeConnectionClosed, err.Error()))
	}
	s.resetRequested.Store(false)
	if msg.Sig != message.SigSuccess {
		return s.fail(api.NewError(api.ErrCodeProtocol, "session: RESET did not receive SUCCESS"))
	}
	s.mu.Lock()
	s.failed = false
	s.failErr = nil
	s.mu.Unlock()
	return nil
}
