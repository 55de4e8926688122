// Package apperrors carries the tracker's structured error signals.
//
// Only two failures are structured: a lookup that found nothing and a form
// that failed presence validation. Storage errors (constraint violations,
// connection failures) are never wrapped in an Error and keep their driver
// type so callers can inspect them.
package apperrors

import (
	"errors"
	"net/http"
)

// Code is a machine-readable error code.
type Code string

const (
	// CodeNotFound indicates a lookup by id returned no row.
	CodeNotFound Code = "NOT_FOUND"
	// CodeValidationFailed indicates a required field was missing or a game
	// named the same team twice.
	CodeValidationFailed Code = "VALIDATION_FAILED"
)

// HTTPStatus maps the code to the response status handlers should use.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeNotFound:
		return http.StatusNotFound
	case CodeValidationFailed:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

var (
	// ErrNotFound matches any Error with CodeNotFound under errors.Is.
	ErrNotFound = New(CodeNotFound, "not found")
	// ErrValidationFailed matches any Error with CodeValidationFailed under errors.Is.
	ErrValidationFailed = New(CodeValidationFailed, "validation failed")
)

// Error is the domain error type with structured metadata.
type Error struct {
	Code     Code              // Machine-readable error code
	Message  string            // User-facing message
	Metadata map[string]string // Additional context, e.g. the entity and id
	Cause    error             // Wrapped underlying error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause for error chain traversal.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error by code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// New creates a simple domain error with a code and message.
func New(code Code, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// WithMetadata creates a domain error with metadata.
func WithMetadata(code Code, message string, metadata map[string]string) *Error {
	return &Error{
		Code:     code,
		Message:  message,
		Metadata: metadata,
	}
}

// NotFound builds a NotFound error for the named entity.
func NotFound(entity, id string) *Error {
	return WithMetadata(CodeNotFound, entity+" not found", map[string]string{
		"entity": entity,
		"id":     id,
	})
}

// Validation builds a ValidationFailed error carrying a user-visible message.
func Validation(message string) *Error {
	return New(CodeValidationFailed, message)
}

// CodeOf extracts the code from err, or "" when err carries none.
func CodeOf(err error) Code {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// HTTPStatus returns the response status for err. Errors without a code are
// treated as storage failures.
func HTTPStatus(err error) int {
	return CodeOf(err).HTTPStatus()
}
