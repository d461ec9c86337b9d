// Package httperr defines the error taxonomy shared by all HTTP handlers.
// Every error carries the status code and the exact user-facing message
// to return; internal causes stay server-side.
package httperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is an error with an associated HTTP status and a message that is
// safe to show to the caller.
type Error interface {
	error
	HTTPStatus() int
	// Message returns the user-facing message. For internal errors this
	// is a generic text, never the underlying cause.
	Message() string
}

// ValidationError represents malformed or missing request input.
type ValidationError struct {
	Msg string
}

// NewValidationError creates a new validation error.
func NewValidationError(msg string) *ValidationError {
	return &ValidationError{Msg: msg}
}

func (e *ValidationError) Error() string   { return fmt.Sprintf("validation failed: %s", e.Msg) }
func (e *ValidationError) HTTPStatus() int { return http.StatusBadRequest }
func (e *ValidationError) Message() string { return e.Msg }

// ConflictError represents a uniqueness conflict, such as a duplicate
// email at registration. It reports 400 rather than 409 to keep the
// original service contract.
type ConflictError struct {
	Msg string
}

// NewConflictError creates a new conflict error.
func NewConflictError(msg string) *ConflictError {
	return &ConflictError{Msg: msg}
}

func (e *ConflictError) Error() string   { return fmt.Sprintf("conflict: %s", e.Msg) }
func (e *ConflictError) HTTPStatus() int { return http.StatusBadRequest }
func (e *ConflictError) Message() string { return e.Msg }

// AuthError represents a missing session or failed credential check.
type AuthError struct {
	Msg string
}

// NewAuthError creates a new authentication error.
func NewAuthError(msg string) *AuthError {
	return &AuthError{Msg: msg}
}

func (e *AuthError) Error() string   { return fmt.Sprintf("unauthenticated: %s", e.Msg) }
func (e *AuthError) HTTPStatus() int { return http.StatusUnauthorized }
func (e *AuthError) Message() string { return e.Msg }

// ForbiddenError represents a session whose role is not allowed to
// perform the requested operation.
type ForbiddenError struct {
	Msg string
}

// NewForbiddenError creates a new authorization error.
func NewForbiddenError(msg string) *ForbiddenError {
	return &ForbiddenError{Msg: msg}
}

func (e *ForbiddenError) Error() string   { return fmt.Sprintf("forbidden: %s", e.Msg) }
func (e *ForbiddenError) HTTPStatus() int { return http.StatusForbidden }
func (e *ForbiddenError) Message() string { return e.Msg }

// NotFoundError represents a resource that does not exist or is not
// owned by the caller. The two cases are deliberately indistinguishable.
type NotFoundError struct {
	Msg string
}

// NewNotFoundError creates a new not found error.
func NewNotFoundError(msg string) *NotFoundError {
	return &NotFoundError{Msg: msg}
}

func (e *NotFoundError) Error() string   { return fmt.Sprintf("not found: %s", e.Msg) }
func (e *NotFoundError) HTTPStatus() int { return http.StatusNotFound }
func (e *NotFoundError) Message() string { return e.Msg }

// InternalError represents a failed store operation. The wrapped cause
// is logged server-side; callers only ever see Msg.
type InternalError struct {
	Msg string
	Err error
}

// NewInternalError creates a new internal error with a generic
// user-facing message and the underlying cause.
func NewInternalError(msg string, err error) *InternalError {
	return &InternalError{Msg: msg, Err: err}
}

func (e *InternalError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *InternalError) HTTPStatus() int { return http.StatusInternalServerError }
func (e *InternalError) Message() string { return e.Msg }

// Unwrap returns the wrapped cause.
func (e *InternalError) Unwrap() error { return e.Err }

// Status resolves any error to the response status and user-facing
// message. Errors outside the taxonomy become a generic 500.
func Status(err error) (int, string) {
	var he Error
	if errors.As(err, &he) {
		return he.HTTPStatus(), he.Message()
	}
	return http.StatusInternalServerError, "An internal error occurred."
}
