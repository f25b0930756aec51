package session

// Job is a caller-visible object (in practice a result.Stream) that the
// session notifies when it can no longer honor that object's pending
// requests: on an explicit reset() (spec section 4.8/5) or when the
// session itself transitions to failed because of a protocol or
// transport error. AttachJob/DetachJob let a job subscribe for the
// duration of its pending requests only.
type Job interface {
	// OnReset is called once reset() is invoked, before the RESET message
	// is even on the wire; pending waits on the job must unblock with
	// SessionReset.
	OnReset()
	// OnSessionFailed is called once the session transitions to failed;
	// err is the protocol or transport error that caused it.
	OnSessionFailed(err error)
}

func (s *Session) AttachJob(j Job) {
	s.jobsMu.Lock()
	defer s.jobsMu.Unlock()
	s.jobs = append(s.jobs, j)
}

func (s *Session) DetachJob(j Job) {
	s.jobsMu.Lock()
	defer s.jobsMu.Unlock()
	for i, cur := range s.jobs {
		if cur == j {
			s.jobs = append(s.jobs[:i], s.jobs[i+1:]...)
			return
		}
	}
}

func (s *Session) notifyReset() {
	s.jobsMu.Lock()
	jobs := append([]Job{}, s.jobs...)
	s.jobsMu.Unlock()
	for _, j := range jobs {
		j.OnReset()
	}
}

func (s *Session) notifyFailed(err error) {
	s.jobsMu.Lock()
	jobs := append([]Job{}, s.jobs...)
	s.jobsMu.Unlock()
	for _, j := range jobs {
		j.OnSessionFailed(err)
	}
}
