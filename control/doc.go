// Package control
// Author: momentics <momentics@gmail.com>
//
// Ambient concerns shared across bolt-core: hot-swappable driver
// configuration, a metrics registry for session/result-stream counters,
// and debug probe introspection. Adapted from hioload-ws's control
// package, which provides the analogous layer for its WebSocket fleet.
//
// Provides concurrent-safe state handling primitives including:
//   - Immutable snapshot config reads and atomic updates
//   - Runtime observers for hot-reload
//   - Metrics telemetry contracts
//   - State export, debug hooks, and probe registration
package control
