// Package apperr holds the error kinds shared by the stores and the web layer.
// Each kind wraps a containerd/errdefs class so errdefs.IsXxx works on anything
// derived from them.
package apperr

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/containerd/errdefs"
)

var (
	ErrAuthentication   = fmt.Errorf("authentication required: %w", errdefs.ErrUnauthenticated)
	ErrInvalidLogin     = fmt.Errorf("invalid email or password: %w", ErrAuthentication)
	ErrDuplicateAccount = fmt.Errorf("user with this email already exists: %w", errdefs.ErrAlreadyExists)
	ErrNotFound         = fmt.Errorf("not found: %w", errdefs.ErrNotFound)
	ErrForbidden        = fmt.Errorf("not allowed: %w", errdefs.ErrPermissionDenied)
	ErrInvalidInput     = fmt.Errorf("invalid input: %w", errdefs.ErrInvalidArgument)
	ErrNotReady         = fmt.Errorf("store is still loading: %w", errdefs.ErrFailedPrecondition)
)

type invalidError struct {
	cause error
}

func (e *invalidError) Error() string { return e.cause.Error() }

func (e *invalidError) Unwrap() []error { return []error{ErrInvalidInput, e.cause} }

// Invalid wraps a validation failure so it classifies as ErrInvalidInput
// while keeping the failure's own text as the message.
func Invalid(err error) error {
	if err == nil {
		return nil
	}
	return &invalidError{cause: err}
}

// StatusCode maps an error to the HTTP status the web layer answers with.
func StatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errdefs.IsUnauthorized(err):
		return http.StatusUnauthorized
	case errdefs.IsPermissionDenied(err):
		return http.StatusForbidden
	case errdefs.IsNotFound(err):
		return http.StatusNotFound
	case errdefs.IsAlreadyExists(err):
		return http.StatusConflict
	case errdefs.IsInvalidArgument(err):
		return http.StatusBadRequest
	case errdefs.IsFailedPrecondition(err):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the text shown to the visitor for err.
func Message(err error) string {
	switch {
	case errors.Is(err, ErrInvalidLogin):
		return "Invalid email or password"
	case errors.Is(err, ErrAuthentication):
		return "You must be logged in"
	case errors.Is(err, ErrDuplicateAccount):
		return "User with this email already exists"
	case errors.Is(err, ErrNotFound):
		return "Not found"
	case errors.Is(err, ErrForbidden):
		return "You do not have permission to do that"
	case errors.Is(err, ErrInvalidInput):
		return err.Error()
	case errors.Is(err, ErrNotReady):
		return "Please try again in a moment"
	default:
		return "An error occurred"
	}
}
