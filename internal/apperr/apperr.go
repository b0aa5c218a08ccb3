// Package apperr classifies the failures that reach the user.
package apperr

import (
	"errors"
	"fmt"
)

// Kind identifies the class of a failure.
type Kind string

const (
	// Device means the capture hardware is unavailable.
	Device Kind = "device"
	// Input means an audio file or text input is unreadable or invalid.
	Input Kind = "input"
	// ModelLoad means a speech or summarization model failed to initialize.
	ModelLoad Kind = "model_load"
	// State means the action is invalid for the current session state.
	// Controllers treat it as a no-op and never return it.
	State Kind = "state"
)

// Error carries a Kind along with the operation that failed.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s error", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New wraps err with kind and op.
func New(kind Kind, op string, err error) error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// Newf builds an Error from a formatted message.
func Newf(kind Kind, op, format string, args ...interface{}) error {
	return &Error{Kind: kind, Op: op, Err: fmt.Errorf(format, args...)}
}

// IsKind reports whether any error in err's chain is an *Error of kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
