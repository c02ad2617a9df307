package errors

import (
	"errors"
	"fmt"
)

// Kind classifies a failure so the calling layer can map it to a
// user-facing status without string matching.
type Kind string

const (
	// KindNotFound means a referenced entity is absent
	KindNotFound Kind = "NOT_FOUND"
	// KindInvalidState means the operation is illegal for the entity's
	// current lifecycle state (editing an archived meeting, re-archiving,
	// re-dispositioning a draft)
	KindInvalidState Kind = "INVALID_STATE"
	// KindValidation means an input is outside its domain
	KindValidation Kind = "VALIDATION"
	// KindConflict means an invariant was violated by concurrent state
	KindConflict Kind = "CONFLICT"
	// KindInternal is everything else
	KindInternal Kind = "INTERNAL"
)

// Error is the caller-visible failure type for all core operations
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

// Unwrap exposes the wrapped cause
func (e *Error) Unwrap() error {
	return e.Err
}

// NotFound reports an absent entity
func NotFound(resource string) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf("%s not found", resource)}
}

// InvalidState reports an operation illegal for the current lifecycle state
func InvalidState(message string) *Error {
	return &Error{Kind: KindInvalidState, Message: message}
}

// Validation reports an input outside its domain
func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

// Validationf reports a formatted validation failure
func Validationf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// Conflict reports an invariant violated by concurrent state
func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

// Internal wraps an unexpected failure
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: "internal error", Err: err}
}

// KindOf extracts the kind of an error, or KindInternal for plain errors
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// IsKind reports whether err carries the given kind
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
