package session

import (
	"context"

	"noticeboard/internal/models"
)

type ctxKey struct{}

// WithStore binds a visitor's Store to ctx.
func WithStore(ctx context.Context, s *Store) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

func FromContext(ctx context.Context) (*Store, bool) {
	s, ok := ctx.Value(ctxKey{}).(*Store)
	return s, ok && s != nil
}

// ContextActor answers "who is acting" from the Store bound to the request context.
// A process shared by many visitors hands this to the content store.
type ContextActor struct{}

func (ContextActor) Current(ctx context.Context) (models.User, bool) {
	s, ok := FromContext(ctx)
	if !ok {
		return models.User{}, false
	}
	return s.Current(ctx)
}
