package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/containerd/errdefs"
	"github.com/stretchr/testify/assert"
)

func TestKindsClassify(t *testing.T) {
	assert.True(t, errdefs.IsUnauthorized(ErrAuthentication))
	assert.True(t, errdefs.IsUnauthorized(ErrInvalidLogin))
	assert.True(t, errors.Is(ErrInvalidLogin, ErrAuthentication))
	assert.True(t, errdefs.IsAlreadyExists(ErrDuplicateAccount))
	assert.True(t, errdefs.IsNotFound(fmt.Errorf("post 9: %w", ErrNotFound)))
	assert.True(t, errdefs.IsPermissionDenied(ErrForbidden))
	assert.True(t, errdefs.IsInvalidArgument(Invalid(errors.New("title is required"))))
	assert.Nil(t, Invalid(nil))
}

func TestStatusCode(t *testing.T) {
	cases := map[error]int{
		nil:                        http.StatusOK,
		ErrAuthentication:          http.StatusUnauthorized,
		ErrForbidden:               http.StatusForbidden,
		ErrNotFound:                http.StatusNotFound,
		ErrDuplicateAccount:        http.StatusConflict,
		ErrInvalidInput:            http.StatusBadRequest,
		ErrNotReady:                http.StatusServiceUnavailable,
		errors.New("disk on fire"): http.StatusInternalServerError,
	}
	for err, want := range cases {
		assert.Equal(t, want, StatusCode(err), "%v", err)
	}
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "Invalid email or password", Message(ErrInvalidLogin))
	assert.Equal(t, "You must be logged in", Message(ErrAuthentication))
	assert.Equal(t, "User with this email already exists", Message(ErrDuplicateAccount))
	assert.Equal(t, "category is invalid", Message(Invalid(errors.New("category is invalid"))))
	assert.ErrorIs(t, Invalid(errors.New("x")), ErrInvalidInput)
}
