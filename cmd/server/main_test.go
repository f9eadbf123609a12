package main

import (
	"errors"
	"net/http"
	"os"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestSupervise_LoadFailureReturns(t *testing.T) {
	errCh := make(chan error)
	loadErr := make(chan error, 1)
	loadErr <- errors.New("corrupt posts")

	err := supervise(&http.Server{}, zap.NewNop(), errCh, loadErr, make(chan os.Signal))
	assert.ErrorContains(t, err, "load posts: corrupt posts")
}

func TestSupervise_LoadedThenSignal(t *testing.T) {
	errCh := make(chan error)
	loadErr := make(chan error, 1)
	loadErr <- nil
	quit := make(chan os.Signal, 1)
	quit <- syscall.SIGTERM

	assert.NoError(t, supervise(&http.Server{}, zap.NewNop(), errCh, loadErr, quit))
}

func TestSupervise_ServerError(t *testing.T) {
	errCh := make(chan error, 1)
	errCh <- errors.New("address in use")

	err := supervise(&http.Server{}, zap.NewNop(), errCh, make(chan error), make(chan os.Signal))
	assert.EqualError(t, err, "address in use")
}
