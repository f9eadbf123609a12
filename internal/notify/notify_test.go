package notify

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestSend_PrefersContextNotifier(t *testing.T) {
	fallback := &Recorder{}
	bound := &Recorder{}

	Send(context.Background(), fallback, Success("a", ""))
	ctx := WithNotifier(context.Background(), bound)
	Send(ctx, fallback, Failure("b", "why"))

	assert.Equal(t, []Message{Success("a", "")}, fallback.Messages())
	last, ok := bound.Last()
	assert.True(t, ok)
	assert.Equal(t, "b", last.Title)
	assert.True(t, last.Destructive())
}

func TestSend_NoNotifier(t *testing.T) {
	assert.NotPanics(t, func() {
		Send(context.Background(), nil, Success("x", ""))
	})
}

func TestLogger_LevelByVariant(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	n := NewLogger(zap.New(core))

	n.Notify(context.Background(), Success("Post created", "ok"))
	n.Notify(context.Background(), Failure("Login failed", "Invalid email or password"))

	entries := logs.All()
	if assert.Len(t, entries, 2) {
		assert.Equal(t, zap.InfoLevel, entries[0].Level)
		assert.Equal(t, zap.WarnLevel, entries[1].Level)
		assert.Equal(t, "Login failed", entries[1].ContextMap()["title"])
	}
}

func TestRecorder_Reset(t *testing.T) {
	r := &Recorder{}
	Func(r.Notify).Notify(context.Background(), Success("x", ""))
	assert.Len(t, r.Messages(), 1)
	r.Reset()
	_, ok := r.Last()
	assert.False(t, ok)
}
