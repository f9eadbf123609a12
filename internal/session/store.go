// Package session tracks the active identity of one visitor and authenticates against a shared Directory.
package session

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

// DefaultLatency is the simulated round trip of login and signup.
const DefaultLatency = 800 * time.Millisecond

type Options struct {
	Latency  time.Duration
	Notifier notify.Notifier
	Logger   *zap.Logger
	Metrics  *metrics.Metrics
}

// Store holds at most one active identity, mirrored to the "user" key of its KV.
type Store struct {
	dir  *Directory
	kv   storage.KV
	opts Options

	mu   sync.RWMutex
	user *models.User

	inflight atomic.Int32
}

// Restore builds a Store and reads back the identity saved under the "user" key, if any.
// An undecodable value is dropped and the visitor starts logged out.
func Restore(ctx context.Context, dir *Directory, kv storage.KV, opts Options) (*Store, error) {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	s := &Store{dir: dir, kv: kv, opts: opts}

	var saved models.User
	found, err := storage.GetJSON(ctx, kv, storage.KeyUser, &saved)
	switch {
	case errors.Is(err, storage.ErrCorrupt):
		opts.Logger.Warn("discarding saved identity", zap.Error(err))
		if err := kv.Remove(ctx, storage.KeyUser); err != nil {
			return nil, fmt.Errorf("clear saved identity: %w", err)
		}
		return s, nil
	case err != nil:
		return nil, err
	}
	if found && saved.ID != "" {
		s.user = &saved
	}
	return s, nil
}

// Login checks the credential against the directory and makes the identity active.
func (s *Store) Login(ctx context.Context, email, password string) (models.User, error) {
	s.inflight.Add(1)
	defer s.inflight.Add(-1)
	start := time.Now()

	s.wait()

	user, err := s.dir.Authenticate(email, password)
	if err != nil {
		s.opts.Logger.Info("login rejected", zap.String("email", email))
		s.finish(ctx, "login", start, err, notify.Failure("Login failed", apperr.Message(err)))
		return models.User{}, err
	}

	if err := s.activate(ctx, user); err != nil {
		s.finish(ctx, "login", start, err, notify.Failure("Login failed", "An error occurred"))
		return models.User{}, err
	}

	s.opts.Logger.Info("user logged in", zap.String("user_id", user.ID))
	s.finish(ctx, "login", start, nil, notify.Success("Login successful", fmt.Sprintf("Welcome back, %s!", user.Name)))
	return user, nil
}

// Signup registers a new "user" account and makes it active.
func (s *Store) Signup(ctx context.Context, name, email, password string) (models.User, error) {
	s.inflight.Add(1)
	defer s.inflight.Add(-1)
	start := time.Now()

	if err := utils.ValidateStruct(models.SignupInput{Name: name, Email: email, Password: password}); err != nil {
		err = apperr.Invalid(err)
		s.finish(ctx, "signup", start, err, notify.Failure("Registration failed", apperr.Message(err)))
		return models.User{}, err
	}

	s.wait()

	user, err := s.dir.Register(name, email, password)
	if err != nil {
		s.finish(ctx, "signup", start, err, notify.Failure("Registration failed", apperr.Message(err)))
		return models.User{}, err
	}

	if err := s.activate(ctx, user); err != nil {
		s.finish(ctx, "signup", start, err, notify.Failure("Registration failed", "An error occurred"))
		return models.User{}, err
	}

	s.opts.Logger.Info("user registered", zap.String("user_id", user.ID))
	s.finish(ctx, "signup", start, nil, notify.Success("Registration successful", fmt.Sprintf("Welcome, %s!", name)))
	return user, nil
}

// Logout clears the active identity. It never fails; a storage error is only logged.
func (s *Store) Logout(ctx context.Context) {
	start := time.Now()
	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()

	if err := s.kv.Remove(ctx, storage.KeyUser); err != nil {
		s.opts.Logger.Error("failed to clear saved identity", zap.Error(err))
	}
	s.finish(ctx, "logout", start, nil, notify.Success("Logged out", "You have been successfully logged out."))
}

// Current returns the active identity.
func (s *Store) Current(_ context.Context) (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return models.User{}, false
	}
	return *s.user, true
}

func (s *Store) IsAdmin() bool {
	u, ok := s.Current(context.Background())
	return ok && u.IsAdmin()
}

// Loading reports whether a login or signup is in flight.
func (s *Store) Loading() bool {
	return s.inflight.Load() > 0
}

func (s *Store) activate(ctx context.Context, user models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := storage.PutJSON(ctx, s.kv, storage.KeyUser, user); err != nil {
		s.opts.Logger.Error("failed to save identity", zap.Error(err))
		return err
	}
	s.user = &user
	return nil
}

func (s *Store) wait() {
	if s.opts.Latency > 0 {
		time.Sleep(s.opts.Latency)
	}
}

func (s *Store) finish(ctx context.Context, op string, start time.Time, err error, m notify.Message) {
	outcome := metrics.OutcomeOK
	switch {
	case err == nil:
	case errors.Is(err, apperr.ErrAuthentication), errors.Is(err, apperr.ErrDuplicateAccount), errors.Is(err, apperr.ErrInvalidInput):
		outcome = metrics.OutcomeRejected
	default:
		outcome = metrics.OutcomeError
	}
	s.opts.Metrics.RecordOperation("session", op, outcome, time.Since(start))
	notify.Send(ctx, s.opts.Notifier, m)
}
