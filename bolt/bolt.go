// Package bolt is the top-level facade orchestrating bolt-core's
// subsystems (C1-C9) into the single call a caller actually wants: connect,
// authenticate, run a statement, stream records. It wires handshake
// negotiation, the session engine, and the result stream over a
// caller-supplied api.ByteStream, the same one-call-setup role the
// teacher's facade.HioloadWS plays over a transport.
//
// Author: momentics <momentics@gmail.com>
package bolt

import (
	"github.com/momentics/bolt-core/api"
	"github.com/momentics/bolt-core/control"
	"github.com/momentics/bolt-core/handshake"
	"github.com/momentics/bolt-core/pool"
	"github.com/momentics/bolt-core/result"
	"github.com/momentics/bolt-core/session"
	"github.com/momentics/bolt-core/values"
)

// Config exposes the tunables a caller may want to override before
// dialing. Connect uses every field as given; DefaultConfig fills Driver
// with control.DefaultDriverConfig().
type Config struct {
	Driver           control.DriverConfig
	ProtocolVersions [4]uint32
	EnableMetrics    bool
	ClientID         string
	AuthReattempt    session.AuthReattempt
}

// DefaultConfig mirrors control.DefaultDriverConfig, offering protocol v2
// before v1 and a bolt-core client identifier.
func DefaultConfig() Config {
	return Config{
		Driver:           control.DefaultDriverConfig(),
		ProtocolVersions: handshake.DefaultCandidates(),
		EnableMetrics:    true,
		ClientID:         "bolt-core/1.0",
	}
}

// Connection is a negotiated, authenticated Bolt connection: a Session
// (C8) ready to Run statements, plus the metrics registry and chosen
// protocol version a caller may want to inspect.
type Connection struct {
	stream  api.ByteStream
	sess    *session.Session
	cfg     Config
	metrics *control.MetricsRegistry
	version uint32
}

// Connect performs the handshake (spec section 6) and then INIT (spec
// section 4.8) over stream, returning a ready-to-use Connection. stream is
// assumed already dialed and, if required, TLS-wrapped by the caller —
// dialing and TLS are explicit non-goals of this module (spec section 1).
func Connect(stream api.ByteStream, authToken values.Value, cfg Config) (*Connection, error) {
	version, err := handshake.Negotiate(stream, cfg.ProtocolVersions)
	if err != nil {
		stream.Close()
		return nil, err
	}

	var metrics *control.MetricsRegistry
	if cfg.EnableMetrics {
		metrics = control.NewMetricsRegistry()
	}

	sess := session.New(stream, cfg.Driver, metrics)
	if err := sess.Init(cfg.ClientID, authToken, cfg.AuthReattempt); err != nil {
		stream.Close()
		return nil, err
	}

	return &Connection{stream: stream, sess: sess, cfg: cfg, metrics: metrics, version: version}, nil
}

// ProtocolVersion returns the version the handshake agreed on (1 or 2).
func (c *Connection) ProtocolVersion() uint32 { return c.version }

// Metrics returns the connection's metrics registry, or nil if metrics
// were disabled in Config.
func (c *Connection) Metrics() *control.MetricsRegistry { return c.metrics }

// CredentialsExpired reports the flag read from INIT's SUCCESS metadata.
func (c *Connection) CredentialsExpired() bool { return c.sess.CredentialsExpired() }

// Run sends RUN followed by PULL_ALL and returns the lazily-filled result
// stream (spec section 4.9). params is sent as given; pass an empty Map for
// "no parameters" (the zero values.Value is Null, not a Map).
func (c *Connection) Run(statement string, params values.Value) (*result.Stream, error) {
	arena := pool.NewArena(c.cfg.Driver.ArenaBlockSize)
	return result.Run(c.sess, arena, statement, params, true)
}

// RunDiscard sends RUN followed by DISCARD_ALL: the statement executes but
// its result rows are never transported to the caller.
func (c *Connection) RunDiscard(statement string, params values.Value) (*result.Stream, error) {
	arena := pool.NewArena(c.cfg.Driver.ArenaBlockSize)
	return result.Run(c.sess, arena, statement, params, false)
}

// Reset is the cancellation primitive (spec section 5): it aborts every
// pending request and resynchronizes the session via RESET.
func (c *Connection) Reset() error { return c.sess.Reset() }

// Failed reports whether the session has transitioned to its terminal
// failed state (spec section 7), and the error that caused it.
func (c *Connection) Failed() (bool, error) { return c.sess.Failed() }

// Close closes the underlying stream; pending requests are not drained
// first. A Connection must not be used after Close.
func (c *Connection) Close() error {
	return c.stream.Close()
}
