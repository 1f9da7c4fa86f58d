package awaitdb

import (
	"context"
	"errors"
	"fmt"
)

// ErrorCode categorizes the failures this layer itself produces.
// Engine-reported errors are passed through verbatim and carry no code.
type ErrorCode string

const (
	// CodeAborted marks a cancellation-origin failure: the waiting
	// context was cancelled before the notification arrived.
	CodeAborted ErrorCode = "ABORTED"

	// CodeBlocked marks an open operation held up by another live
	// connection to the same database.
	CodeBlocked ErrorCode = "BLOCKED"

	// CodeUpgrade marks a failure thrown by the caller's upgrade
	// callback during an open operation.
	CodeUpgrade ErrorCode = "UPGRADE_FAILED"
)

// Error is a structured failure from the bridging layer.
type Error struct {
	// Code identifies the failure category.
	Code ErrorCode

	// Op names the operation that failed ("open", "wait", ...).
	Op string

	// Message is a human-readable description.
	Message string

	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("%s: %s (op=%s)", e.Code, e.Message, e.Op)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// IsAborted reports whether err is cancellation-origin: an ABORTED
// *Error, or a bare context cancellation returned from caller code.
// Uses errors.As/Is to handle wrapped errors.
func IsAborted(err error) bool {
	var e *Error
	if errors.As(err, &e) && e.Code == CodeAborted {
		return true
	}
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// IsBlocked reports whether err is a BLOCKED open failure.
func IsBlocked(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == CodeBlocked
}

// IsUpgradeError reports whether err originated in the caller's
// upgrade callback.
func IsUpgradeError(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == CodeUpgrade
}

// abortError builds the ABORTED failure for one operation.
func abortError(op string, cause error) *Error {
	return &Error{
		Code:    CodeAborted,
		Op:      op,
		Message: "wait cancelled before the notification arrived",
		Err:     cause,
	}
}
