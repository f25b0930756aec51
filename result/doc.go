// File: result/doc.go
// Author: momentics <momentics@gmail.com>
//
// Package result implements the result stream (C9, spec section 4.9):
// the lazily-driven record sequence created by running a statement, fed
// by the session's RUN/PULL_ALL callbacks and consumed via fetchNext/peek.
// Grounded on the session package's Callback/Job collaborators (C8) the
// same way the teacher's higher-level consumers build on its lock-free
// queue primitives without reaching past the published interface.
package result
