// Package session implements the Bolt session engine (spec section 4.8):
// a pipelined request/response queue driving a single connection through
// RUN/PULL_ALL/DISCARD_ALL/RESET, with failure-cascade handling and
// cooperative, single-threaded-except-reset concurrency (spec section 5).
//
// The pending-request queue is the teacher's eapache/queue.Queue
// (internal/concurrency/executor.go used it for MPMC task dispatch;
// here it holds *Request values in strict FIFO order, matching the one
// property both uses actually need: indexed peek without removing the
// head until its terminal response arrives).
//
// Author: momentics <momentics@gmail.com>
package session
