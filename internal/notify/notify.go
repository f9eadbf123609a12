// Package notify carries the short transient messages the stores emit after an operation.
package notify

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

type Variant string

const (
	VariantDefault     Variant = "default"
	VariantDestructive Variant = "destructive"
)

// Message is a toast: a title, an optional description and a variant.
type Message struct {
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Variant     Variant `json:"variant"`
}

func (m Message) Destructive() bool {
	return m.Variant == VariantDestructive
}

// Success builds a default message.
func Success(title, description string) Message {
	return Message{Title: title, Description: description, Variant: VariantDefault}
}

// Failure builds a destructive message.
func Failure(title, description string) Message {
	return Message{Title: title, Description: description, Variant: VariantDestructive}
}

type Notifier interface {
	Notify(ctx context.Context, m Message)
}

// Func adapts a plain function to Notifier.
type Func func(ctx context.Context, m Message)

func (f Func) Notify(ctx context.Context, m Message) { f(ctx, m) }

type ctxKey struct{}

// WithNotifier binds n to ctx so operations running under ctx report to it.
func WithNotifier(ctx context.Context, n Notifier) context.Context {
	return context.WithValue(ctx, ctxKey{}, n)
}

// FromContext returns the notifier bound to ctx, if any.
func FromContext(ctx context.Context) (Notifier, bool) {
	n, ok := ctx.Value(ctxKey{}).(Notifier)
	return n, ok && n != nil
}

// Send delivers m to the notifier bound to ctx, falling back to fallback.
func Send(ctx context.Context, fallback Notifier, m Message) {
	if n, ok := FromContext(ctx); ok {
		n.Notify(ctx, m)
		return
	}
	if fallback != nil {
		fallback.Notify(ctx, m)
	}
}

// Logger writes messages to a zap logger.
type Logger struct {
	log *zap.Logger
}

func NewLogger(log *zap.Logger) *Logger {
	return &Logger{log: log}
}

func (l *Logger) Notify(_ context.Context, m Message) {
	fields := []zap.Field{zap.String("title", m.Title), zap.String("description", m.Description)}
	if m.Destructive() {
		l.log.Warn("notification", fields...)
		return
	}
	l.log.Info("notification", fields...)
}

// Recorder keeps every message it receives. Safe for concurrent use.
type Recorder struct {
	mu       sync.Mutex
	messages []Message
}

func (r *Recorder) Notify(_ context.Context, m Message) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, m)
}

func (r *Recorder) Messages() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Message, len(r.messages))
	copy(out, r.messages)
	return out
}

// Last returns the most recent message.
func (r *Recorder) Last() (Message, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.messages) == 0 {
		return Message{}, false
	}
	return r.messages[len(r.messages)-1], true
}

func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = nil
}
