// Package content owns the posts collection: posts, their comments and their like sets.
//
// Every mutation follows the same path: resolve the actor, check role and ownership,
// wait the simulated latency, then under the store lock copy the collection, apply the
// change, persist the whole collection under the "posts" key and swap the copy in.
// A failure at any step leaves both memory and storage untouched.
package content

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"noticeboard/internal/apperr"
	"noticeboard/internal/metrics"
	"noticeboard/internal/models"
	"noticeboard/internal/notify"
	"noticeboard/internal/storage"
	"noticeboard/internal/utils"

	"go.uber.org/zap"
)

const (
	DefaultLatency     = 500 * time.Millisecond
	DefaultLikeLatency = 300 * time.Millisecond
)

var (
	errPostMissing    = fmt.Errorf("post %w", apperr.ErrNotFound)
	errCommentMissing = fmt.Errorf("comment %w", apperr.ErrNotFound)
)

// Actor reports who is acting in ctx.
type Actor interface {
	Current(ctx context.Context) (models.User, bool)
}

// Options configure a Store. Zero latencies mean no delay.
type Options struct {
	Latency         time.Duration
	LikeLatency     time.Duration
	SearchCacheSize int
	Notifier        notify.Notifier
	Logger          *zap.Logger
	Metrics         *metrics.Metrics
	Now             func() time.Time
}

type Store struct {
	kv    storage.KV
	actor Actor
	opts  Options
	cache *utils.Cache[[]models.Post]

	loadOnce sync.Once
	loadErr  error
	ready    atomic.Bool
	busy     atomic.Int32

	mu    sync.RWMutex
	posts []models.Post
}

func New(kv storage.KV, actor Actor, opts Options) (*Store, error) {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.SearchCacheSize <= 0 {
		opts.SearchCacheSize = 128
	}
	cache, err := utils.NewCache[[]models.Post](opts.SearchCacheSize)
	if err != nil {
		return nil, fmt.Errorf("create search cache: %w", err)
	}
	return &Store{
		kv:    kv,
		actor: actor,
		opts:  opts,
		cache: cache,
		posts: []models.Post{},
	}, nil
}

// Load moves the store from Loading to Ready. It restores the "posts" key if present,
// otherwise seeds the example posts and persists them. Only the first call does work.
func (s *Store) Load(ctx context.Context) error {
	s.loadOnce.Do(func() {
		s.loadErr = s.load(ctx)
	})
	return s.loadErr
}

func (s *Store) load(ctx context.Context) error {
	s.wait(s.opts.Latency)

	s.mu.Lock()
	defer s.mu.Unlock()

	var saved []models.Post
	found, err := storage.GetJSON(ctx, s.kv, storage.KeyPosts, &saved)
	if err != nil {
		return fmt.Errorf("restore posts: %w", err)
	}

	if found {
		s.posts = clonePosts(saved)
		s.opts.Logger.Info("posts restored", zap.Int("count", len(s.posts)))
	} else {
		posts := SeedPosts(s.now())
		if err := storage.PutJSON(ctx, s.kv, storage.KeyPosts, posts); err != nil {
			return fmt.Errorf("persist seed posts: %w", err)
		}
		s.posts = posts
		s.opts.Logger.Info("posts seeded", zap.Int("count", len(s.posts)))
	}

	// drop results cached over the empty collection while loading
	s.cache.Purge()
	s.opts.Metrics.SetPosts(len(s.posts))
	s.ready.Store(true)
	return nil
}

// Ready reports whether Load has completed.
func (s *Store) Ready() bool {
	return s.ready.Load()
}

// Busy reports whether a mutation is in flight.
func (s *Store) Busy() bool {
	return s.busy.Load() > 0
}

// operation describes one kind of mutation for gating, metrics and notifications.
type operation struct {
	name    string // metrics label
	action  string // completes "You must be logged in to ..."
	failure string
	latency time.Duration
	success notify.Message // zero Title sends nothing
}

// checkFunc runs before the latency against a read-only view of the collection.
type checkFunc func(actor models.User, posts []models.Post) error

// applyFunc mutates the private copy it is given and returns it.
type applyFunc func(actor models.User, posts []models.Post) ([]models.Post, error)

func (s *Store) mutate(ctx context.Context, op operation, check checkFunc, apply applyFunc) (err error) {
	start := time.Now()
	defer func() {
		s.opts.Metrics.RecordOperation("content", op.name, outcome(err), time.Since(start))
		if err != nil {
			notify.Send(ctx, s.opts.Notifier, failureMessage(op, err))
		} else if op.success.Title != "" {
			notify.Send(ctx, s.opts.Notifier, op.success)
		}
	}()

	if !s.Ready() {
		return apperr.ErrNotReady
	}

	actor, ok := s.actor.Current(ctx)
	if !ok {
		return apperr.ErrAuthentication
	}

	if check != nil {
		s.mu.RLock()
		err = check(actor, s.posts)
		s.mu.RUnlock()
		if err != nil {
			return err
		}
	}

	s.busy.Add(1)
	defer s.busy.Add(-1)

	s.wait(op.latency)

	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := apply(actor, clonePosts(s.posts))
	if err != nil {
		return err
	}
	if err := storage.PutJSON(ctx, s.kv, storage.KeyPosts, next); err != nil {
		s.opts.Logger.Error("failed to persist posts", zap.String("op", op.name), zap.Error(err))
		return err
	}
	s.posts = next
	s.cache.Purge()
	s.opts.Metrics.SetPosts(len(next))

	s.opts.Logger.Debug("posts updated", zap.String("op", op.name), zap.String("actor", actor.ID))
	return nil
}

func (s *Store) wait(d time.Duration) {
	if d > 0 {
		time.Sleep(d)
	}
}

// now is UTC without a monotonic reading, so it survives a JSON round trip unchanged.
func (s *Store) now() time.Time {
	return s.opts.Now().UTC().Round(0)
}

func failureMessage(op operation, err error) notify.Message {
	var desc string
	switch {
	case errors.Is(err, apperr.ErrAuthentication):
		desc = "You must be logged in to " + op.action
	case errors.Is(err, apperr.ErrForbidden):
		desc = "You do not have permission to " + op.action
	case errors.Is(err, errCommentMissing):
		desc = "The comment could not be found."
	case errors.Is(err, apperr.ErrNotFound):
		desc = "The post could not be found."
	case errors.Is(err, apperr.ErrInvalidInput):
		desc = apperr.Message(err)
	case errors.Is(err, apperr.ErrNotReady):
		desc = "Posts are still loading. Please try again in a moment."
	default:
		desc = op.failure
	}
	return notify.Failure("Error", desc)
}

func outcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeOK
	case errors.Is(err, apperr.ErrNotFound):
		return metrics.OutcomeNotFound
	case errors.Is(err, apperr.ErrForbidden):
		return metrics.OutcomeForbidden
	case errors.Is(err, apperr.ErrAuthentication), errors.Is(err, apperr.ErrInvalidInput), errors.Is(err, apperr.ErrNotReady):
		return metrics.OutcomeRejected
	default:
		return metrics.OutcomeError
	}
}

func clonePosts(posts []models.Post) []models.Post {
	out := make([]models.Post, len(posts))
	for i, p := range posts {
		out[i] = p.Clone()
	}
	return out
}

func indexOf(posts []models.Post, id string) int {
	for i := range posts {
		if posts[i].ID == id {
			return i
		}
	}
	return -1
}
