// Package apperr defines the error taxonomy shared by all services.
// Every user-visible failure carries a machine-readable kind and a short
// message; handlers map kinds to HTTP status codes. Internal errors are
// logged but never exposed verbatim to callers.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error for transport mapping.
type Kind string

const (
	KindValidation       Kind = "validation_error"
	KindUnauthenticated  Kind = "unauthenticated"
	KindPermissionDenied Kind = "permission_denied"
	KindNotFound         Kind = "not_found"
	KindConflict         Kind = "scheduling_conflict"
	KindInternal         Kind = "internal_error"
)

// Error is the single error type services return to the API layer.
type Error struct {
	Kind    Kind
	Message string
	err     error
}

func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap exposes the wrapped cause for errors.Is/As chains.
func (e *Error) Unwrap() error {
	return e.err
}

// Validation reports malformed, missing, or out-of-range input.
func Validation(format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// Unauthenticated reports missing or invalid credentials.
func Unauthenticated(format string, args ...interface{}) *Error {
	return &Error{Kind: KindUnauthenticated, Message: fmt.Sprintf(format, args...)}
}

// PermissionDenied reports an authenticated caller with insufficient
// role or ownership.
func PermissionDenied(format string, args ...interface{}) *Error {
	return &Error{Kind: KindPermissionDenied, Message: fmt.Sprintf(format, args...)}
}

// NotFound reports an absent referenced entity.
func NotFound(format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// Conflict reports a venue double-booking.
func Conflict(format string, args ...interface{}) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

// Internal wraps a store or downstream failure. The cause is preserved
// for logging; the message is what the caller sees.
func Internal(err error, message string) *Error {
	return &Error{Kind: KindInternal, Message: message, err: err}
}

// HTTPStatus maps an error kind to its response status. Unknown errors
// are treated as internal.
func HTTPStatus(err error) int {
	var e *Error
	if !errors.As(err, &e) {
		return http.StatusInternalServerError
	}
	switch e.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindPermissionDenied:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// KindOf returns the kind of err, or KindInternal for foreign errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
