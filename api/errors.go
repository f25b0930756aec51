// Package api defines the collaborator contracts the bolt-core engine
// consumes: byte streams, buffer pools, and the structured error taxonomy
// shared by every component (C1-C9).
//
// Author: momentics <momentics@gmail.com>
package api

import "fmt"

// ErrorCode classifies failures per the taxonomy in spec section 7.
type ErrorCode int

const (
	ErrCodeNone ErrorCode = iota

	// Protocol errors: fatal to the session.
	ErrCodeProtocol

	// Statement errors: local to a result stream, recoverable via ACK_FAILURE.
	ErrCodeStatementFailed
	ErrCodeStatementPreviousFailure
	ErrCodeNoPlanAvailable

	// Authentication errors: surfaced to the initialise path.
	ErrCodeInvalidCredentials
	ErrCodeAuthRateLimit
	ErrCodeSecureConnectionRequired

	// Transport errors: fatal to session and connection.
	ErrCodeConnectionClosed
	ErrCodeIO

	// Resource errors: caller-visible, session state remains consistent.
	ErrCodeOutOfMemory
	ErrCodeQueueFull

	// Value-construction errors: local, never corrupt enclosing structures.
	ErrCodeInvalidArgument
	ErrCodeInvalidMapKeyType
	ErrCodeInvalidLabelType
	ErrCodeInvalidPathNodeType
	ErrCodeInvalidPathRelationshipType
	ErrCodeInvalidPathSequenceLength
	ErrCodeInvalidPathSequenceIdxType
	ErrCodeInvalidPathSequenceIdxRange

	// Session lifecycle.
	ErrCodeSessionReset
)

var codeNames = map[ErrorCode]string{
	ErrCodeNone:                        "none",
	ErrCodeProtocol:                    "protocol error",
	ErrCodeStatementFailed:             "statement evaluation failed",
	ErrCodeStatementPreviousFailure:    "statement skipped after previous failure",
	ErrCodeNoPlanAvailable:             "no plan available",
	ErrCodeInvalidCredentials:          "invalid credentials",
	ErrCodeAuthRateLimit:               "authentication rate limited",
	ErrCodeSecureConnectionRequired:    "server requires secure connection",
	ErrCodeConnectionClosed:            "connection closed",
	ErrCodeIO:                          "i/o error",
	ErrCodeOutOfMemory:                 "out of memory",
	ErrCodeQueueFull:                   "request queue full",
	ErrCodeInvalidArgument:             "invalid argument",
	ErrCodeInvalidMapKeyType:           "invalid map key type",
	ErrCodeInvalidLabelType:            "invalid label type",
	ErrCodeInvalidPathNodeType:         "invalid path node type",
	ErrCodeInvalidPathRelationshipType: "invalid path relationship type",
	ErrCodeInvalidPathSequenceLength:   "invalid path sequence length",
	ErrCodeInvalidPathSequenceIdxType:  "invalid path sequence index type",
	ErrCodeInvalidPathSequenceIdxRange: "invalid path sequence index range",
	ErrCodeSessionReset:                "session reset",
}

func (c ErrorCode) String() string {
	if s, ok := codeNames[c]; ok {
		return s
	}
	return "unknown error"
}

// Error is the structured error carried across all bolt-core components.
// Context holds optional diagnostic fields (e.g. failure details, position).
type Error struct {
	Code    ErrorCode
	Message string
	Context map[string]any
}

func (e *Error) Error() string {
	if e.Message == "" {
		return e.Code.String()
	}
	if len(e.Context) == 0 {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s (context: %+v)", e.Code, e.Message, e.Context)
}

// Is supports errors.Is comparison by code.
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == other.Code
}

// NewError constructs a structured error with an empty context map.
func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message, Context: make(map[string]any)}
}

// WithContext attaches a diagnostic field and returns the receiver.
func (e *Error) WithContext(key string, value any) *Error {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

// Sentinel errors for conditions with no extra context.
var (
	ErrConnectionClosed = NewError(ErrCodeConnectionClosed, "stream closed")
	ErrQueueFull        = NewError(ErrCodeQueueFull, "pending request queue is full")
	ErrOutOfMemory      = NewError(ErrCodeOutOfMemory, "allocator exhausted")
	ErrSessionReset     = NewError(ErrCodeSessionReset, "session was reset")
)
