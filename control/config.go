// control/config.go
// Author: momentics <momentics@gmail.com>
//
// DriverConfig is a thread-safe, hot-swappable snapshot of the tunables the
// session engine (C8) and buffering I/O layer (C5) read on every request:
// pipelining depth, chunk size bounds, ring buffer capacity, and a
// protocol version preference list that nothing reads (bolt.Connect offers
// bolt.Config.ProtocolVersions to the handshake). Adapted from the
// teacher's generic ConfigStore (map + reload listeners) into a typed
// struct snapshot, since bolt-core has a small, fixed set of tunables
// rather than an open-ended plugin config surface.
package control

import "sync"

// DriverConfig holds the tunables a Session/Driver reads per request.
type DriverConfig struct {
	MaxPipelinedRequests int
	MinChunkSize         int
	MaxChunkSize         int
	RingBufferCapacity   int
	ArenaBlockSize       int
	// ProtocolVersions lists Bolt major versions (1 or 2), most preferred
	// first. Nothing in this module reads it; the handshake in bolt.Connect
	// offers bolt.Config.ProtocolVersions instead.
	ProtocolVersions []uint32
}

// DefaultDriverConfig returns the tunables used when a caller does not
// supply its own: pipelining depth 64, chunk thresholds per spec section
// 4.4, a 64KiB ring per direction, and protocol v2 preferred over v1.
func DefaultDriverConfig() DriverConfig {
	return DriverConfig{
		MaxPipelinedRequests: 64,
		MinChunkSize:         8192,
		MaxChunkSize:         65535,
		RingBufferCapacity:   64 * 1024,
		ArenaBlockSize:       64,
		ProtocolVersions:     []uint32{2, 1, 0, 0},
	}
}

// ConfigStore is a thread-safe, hot-swappable holder of one DriverConfig
// snapshot, with reload listeners notified after every SetConfig.
type ConfigStore struct {
	mu        sync.RWMutex
	cfg       DriverConfig
	listeners []func(DriverConfig)
}

// NewConfigStore initializes a store with cfg as the initial snapshot.
func NewConfigStore(cfg DriverConfig) *ConfigStore {
	return &ConfigStore{cfg: cfg}
}

// Snapshot returns the current configuration by value.
func (cs *ConfigStore) Snapshot() DriverConfig {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return cs.cfg
}

// SetConfig replaces the snapshot and dispatches reload listeners.
func (cs *ConfigStore) SetConfig(cfg DriverConfig) {
	cs.mu.Lock()
	cs.cfg = cfg
	listeners := append([]func(DriverConfig){}, cs.listeners...)
	cs.mu.Unlock()
	for _, fn := range listeners {
		fn(cfg)
	}
}

// OnReload registers a listener invoked (synchronously, in SetConfig's
// caller goroutine) whenever the snapshot changes.
func (cs *ConfigStore) OnReload(fn func(DriverConfig)) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.listeners = append(cs.listeners, fn)
}
