package session

import (
	"sync"
	"sync/atomic"

	"github.com/eapache/queue"

	"github.com/momentics/bolt-core/api"
	"github.com/momentics/bolt-core/chunking"
	"github.com/momentics/bolt-core/control"
	"github.com/momentics/bolt-core/message"
	"github.com/momentics/bolt-core/ringio"
)

// Session drives one Bolt connection's pipelined request/response queue
// (spec section 4.8). It owns the chunked message writer/reader stacked
// on a ringio.RingIO over the caller-supplied api.ByteStream, and is safe
// for exactly the concurrency pattern spec section 5 describes: any
// number of goroutines may construct requests, but only one may be
// "inside" Sync at a time, with Reset the sole exception.
type Session struct {
	cfg     control.DriverConfig
	metrics *control.MetricsRegistry

	ring   *ringio.RingIO
	writer *message.Writer
	reader *message.Reader

	mu    sync.Mutex // guards queue/sent/cascade/failed fields below
	queue *queue.Queue
	sent  int

	failed             bool
	failErr            error
	credentialsExpired bool

	cascading        bool
	cascadeRemaining int

	processing     atomic.Bool
	resetRequested atomic.Bool

	jobsMu sync.Mutex
	jobs   []Job
}

// New builds a Session over stream using cfg's pipelining/framing/ring
// tunables. metrics may be nil, in which case counters are not recorded.
func New(stream api.ByteStream, cfg control.DriverConfig, metrics *control.MetricsRegistry) *Session {
	ring := ringio.New(stream, cfg.RingBufferCapacity)
	enc := chunking.NewEncoder(ring, cfg.MinChunkSize, cfg.MaxChunkSize)
	dec := chunking.NewDecoder(ring)
	return &Session{
		cfg:     cfg,
		metrics: metrics,
		ring:    ring,
		writer:  message.NewWriter(enc),
		reader:  message.NewReader(dec, nil, nil),
		queue:   queue.New(),
	}
}

// Failed reports whether the session has transitioned to the terminal
// failed state (spec section 7: protocol or transport errors are fatal).
func (s *Session) Failed() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.failed, s.failErr
}

// CredentialsExpired reports the flag read from INIT's SUCCESS metadata.
func (s *Session) CredentialsExpired() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.credentialsExpired
}

func (s *Session) incrMetric(key string, n int64) {
	if s.metrics != nil {
		s.metrics.Incr(key, n)
	}
}

// IncrMetric exposes the session's metrics registry to collaborators
// outside this package (in practice result.Stream, tracking records
// streamed) without handing out the registry reference itself.
func (s *Session) IncrMetric(key string, n int64) {
	s.incrMetric(key, n)
}

// enqueue appends req to the pending queue; returns ErrConnectionClosed if
// the session has already failed (no further requests are ever honored).
func (s *Session) enqueue(req *Request) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failed {
		return api.ErrConnectionClosed
	}
	s.queue.Add(req)
	return nil
}

