// Package apperror defines the error taxonomy shared by every pipeline
// stage. Each kind carries a fixed HTTP status; the fiber error handler
// normalizes any *Error into a single JSON response.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind string

const (
	KindMissingBody          Kind = "missing_body"
	KindPayloadTooLarge      Kind = "payload_too_large"
	KindValidationFailed     Kind = "validation_failed"
	KindMissingCredential    Kind = "missing_or_malformed_credential"
	KindInvalidCredential    Kind = "invalid_credential"
	KindNoActivePrincipal    Kind = "no_active_principal"
	KindPrincipalHasNoRole   Kind = "principal_has_no_role"
	KindNoActiveTenant       Kind = "no_active_tenant"
	KindAccessDenied         Kind = "access_denied"
	KindPermissionDenied     Kind = "permission_denied"
	KindNotFound             Kind = "not_found"
	KindConflict             Kind = "conflict"
	KindInternal             Kind = "internal"
)

// FieldError reports a single violated path inside a request payload.
type FieldError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// Error is the tagged failure type every component returns. Message is
// user-facing for 4xx; the wrapped cause is operator-facing only.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	Fields  []FieldError
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// WithCause attaches an underlying error without changing the outward shape.
func (e *Error) WithCause(err error) *Error {
	clone := *e
	clone.Err = err
	return &clone
}

func newError(kind Kind, status int, message string) *Error {
	return &Error{Kind: kind, Status: status, Message: message}
}

func MissingBody(method string) *Error {
	return newError(KindMissingBody, http.StatusBadRequest, fmt.Sprintf("missing %s request body", method))
}

func PayloadTooLarge(message string) *Error {
	return newError(KindPayloadTooLarge, http.StatusRequestEntityTooLarge, message)
}

func ValidationFailed(fields []FieldError) *Error {
	e := newError(KindValidationFailed, http.StatusBadRequest, "validation failed")
	e.Fields = fields
	return e
}

func MissingCredential() *Error {
	return newError(KindMissingCredential, http.StatusUnauthorized, "missing or malformed authorization header")
}

func InvalidCredential() *Error {
	return newError(KindInvalidCredential, http.StatusUnauthorized, "invalid or malformed token")
}

func InvalidLogin() *Error {
	return newError(KindInvalidCredential, http.StatusUnauthorized, "invalid username or password")
}

func NoActivePrincipal() *Error {
	return newError(KindNoActivePrincipal, http.StatusForbidden, "no active user found")
}

func PrincipalHasNoRole() *Error {
	return newError(KindPrincipalHasNoRole, http.StatusForbidden, "user has no role")
}

func NoActiveTenant() *Error {
	return newError(KindNoActiveTenant, http.StatusForbidden, "no active tenant found")
}

func AccessDenied() *Error {
	return newError(KindAccessDenied, http.StatusForbidden, "access denied")
}

func AccessDeniedWith(message string) *Error {
	return newError(KindAccessDenied, http.StatusForbidden, message)
}

func PermissionDenied() *Error {
	return newError(KindPermissionDenied, http.StatusForbidden, "permission denied")
}

func NotFound(what string) *Error {
	return newError(KindNotFound, http.StatusNotFound, what+" not found")
}

func Conflict(message string) *Error {
	return newError(KindConflict, http.StatusConflict, message)
}

func Internal(err error) *Error {
	return newError(KindInternal, http.StatusInternalServerError, "internal server error").WithCause(err)
}

func BadRequest(message string) *Error {
	return newError(KindValidationFailed, http.StatusBadRequest, message)
}

// From extracts an *Error from err, wrapping unknown errors as internal.
func From(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal(err)
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind == kind
	}
	return false
}
