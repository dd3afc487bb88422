// Package failure classifies bootstrap errors so callers can switch on what went wrong
// instead of matching concrete types.
package failure

import (
	"context"
	"errors"
)

// Code identifies a specific failure.
type Code string

const (
	CodeConnectivityFailed    Code = "connectivity_failed"
	CodeRegistrationFailed    Code = "registration_failed"
	CodeDeserializationFailed Code = "deserialization_failed"
	CodePersistenceFailed     Code = "persistence_failed"
	CodeInvalidArgument       Code = "invalid_argument"
	CodeCancelled             Code = "cancelled"
)

// Kind groups codes by how a caller should react.
type Kind int

const (
	KindUnknown Kind = iota
	// KindAdvisory failures have a fallback; they are logged, not retried.
	KindAdvisory
	// KindSetup failures leave the exchange or local storage unusable for this run.
	KindSetup
	// KindContract failures are caller defects.
	KindContract
	// KindCancellation means the run was interrupted; it is not a failure.
	KindCancellation
)

func (k Kind) String() string {
	switch k {
	case KindAdvisory:
		return "advisory"
	case KindSetup:
		return "setup"
	case KindContract:
		return "contract"
	case KindCancellation:
		return "cancellation"
	default:
		return "unknown"
	}
}

// Kind returns the group the code belongs to.
func (c Code) Kind() Kind {
	switch c {
	case CodeConnectivityFailed:
		return KindAdvisory
	case CodeRegistrationFailed, CodeDeserializationFailed, CodePersistenceFailed:
		return KindSetup
	case CodeInvalidArgument:
		return KindContract
	case CodeCancelled:
		return KindCancellation
	default:
		return KindUnknown
	}
}

// Error carries a stable code alongside the underlying cause.
type Error struct {
	Code    Code
	Message string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = string(e.Code)
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

// Unwrap implements error unwrapping for error chains.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches another *Error by code, so sentinel values work with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// New creates a coded error without a cause.
func New(code Code, msg string) error {
	return &Error{Code: code, Message: msg}
}

// Wrap creates a coded error around err. A context cancellation
// anywhere in err's chain is reported as CodeCancelled regardless of code.
func Wrap(err error, code Code, msg string) error {
	if errors.Is(err, context.Canceled) {
		code = CodeCancelled
	}
	return &Error{Code: code, Message: msg, Err: err}
}

// Cancelled wraps a context error as a cancellation.
func Cancelled(err error, msg string) error {
	return &Error{Code: CodeCancelled, Message: msg, Err: err}
}

// InvalidArgument reports a caller defect.
func InvalidArgument(msg string) error {
	return &Error{Code: CodeInvalidArgument, Message: msg}
}

// CodeOf returns the outermost code in err's chain, or "" if there is none.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	if errors.Is(err, context.Canceled) {
		return CodeCancelled
	}
	return ""
}

// KindOf classifies err. Plain context cancellations count as KindCancellation.
func KindOf(err error) Kind {
	return CodeOf(err).Kind()
}

// HasCode reports whether err carries the given code.
func HasCode(err error, code Code) bool {
	return CodeOf(err) == code
}

// IsCancelled reports whether err represents an interrupted run.
func IsCancelled(err error) bool {
	return KindOf(err) == KindCancellation
}
