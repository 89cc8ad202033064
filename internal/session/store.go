// Package session keeps the bearer token and logged-in flag that gate every
// authenticated call, on top of a pluggable ports.SessionRepository.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/bft-labs/distclient/internal/domain"
	"github.com/bft-labs/distclient/internal/observe"
	"github.com/bft-labs/distclient/internal/ports"
	"github.com/bft-labs/distclient/pkg/log"
)

// ErrWatchUnsupported is returned by Watch when the backend cannot observe
// external changes.
var ErrWatchUnsupported = errors.New("session: backend does not support watching")

// Store is safe for concurrent use. Reads always go to the repository so
// that a token written by another process is seen immediately. Writes are
// serialized by one mutex.
type Store struct {
	repo   ports.SessionRepository
	logger log.Logger
	now    func() time.Time

	watchDelay time.Duration

	mu       sync.Mutex
	loggedIn *observe.Value[bool]
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger.
func WithLogger(l log.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock overrides time.Now for expiry checks.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// New creates a Store. LoggedIn starts false; call Refresh to publish the
// persisted state.
func New(repo ports.SessionRepository, opts ...Option) *Store {
	s := &Store{
		repo:       repo,
		logger:     log.Discard,
		now:        time.Now,
		watchDelay: watchBackoffInitial,
		loggedIn:   observe.NewValue(false),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Token returns the stored token, or "" if none.
func (s *Store) Token(ctx context.Context) (string, error) {
	sess, err := s.Session(ctx)
	if err != nil {
		return "", err
	}
	return sess.Token, nil
}

// Session returns the stored session.
func (s *Store) Session(ctx context.Context) (domain.Session, error) {
	sess, err := s.repo.Load(ctx)
	if err != nil {
		return domain.Session{}, &domain.StorageError{Op: "load", Err: err}
	}
	return sess, nil
}

// SaveToken replaces the stored token and leaves the flag untouched.
func (s *Store) SaveToken(ctx context.Context, token string) error {
	return s.modify(ctx, func(sess *domain.Session) { sess.Token = token })
}

// ClearToken removes the token and leaves the flag untouched.
func (s *Store) ClearToken(ctx context.Context) error {
	return s.modify(ctx, func(sess *domain.Session) { sess.Token = "" })
}

// SetLoggedIn sets the flag and leaves the token untouched.
func (s *Store) SetLoggedIn(ctx context.Context, v bool) error {
	return s.modify(ctx, func(sess *domain.Session) { sess.IsLoggedIn = v })
}

// Establish stores a fresh token and sets the flag in one write.
func (s *Store) Establish(ctx context.Context, token string) error {
	return s.modify(ctx, func(sess *domain.Session) {
		sess.Token = token
		sess.IsLoggedIn = true
	})
}

// Clear removes the token and flag together.
func (s *Store) Clear(ctx context.Context) error {
	return s.modify(ctx, func(sess *domain.Session) { *sess = domain.Session{} })
}

func (s *Store) modify(ctx context.Context, fn func(*domain.Session)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.repo.Load(ctx)
	if err != nil {
		return &domain.StorageError{Op: "load", Err: err}
	}
	fn(&sess)
	if err := s.repo.Save(ctx, sess); err != nil {
		return &domain.StorageError{Op: "save", Err: err}
	}
	s.publish(sess)
	return nil
}

func (s *Store) publish(sess domain.Session) {
	next := sess.IsLoggedIn && sess.Token != ""
	s.loggedIn.Update(func(cur bool) (bool, bool) { return next, cur != next })
}

// LoggedIn is the observable logged-in flag. It is false while the session
// is inconsistent (flag set without a token).
func (s *Store) LoggedIn() *observe.Value[bool] {
	return s.loggedIn
}

// Refresh reloads the session and republishes LoggedIn. On storage failure
// LoggedIn degrades to false.
func (s *Store) Refresh(ctx context.Context) error {
	sess, err := s.Session(ctx)
	if err != nil {
		s.logger.Warn("session load failed, treating as logged out", log.Err(err))
		s.publish(domain.Session{})
		return err
	}
	s.publish(sess)
	return nil
}

// Check classifies the stored session.
func (s *Store) Check(ctx context.Context) (domain.SessionStatus, error) {
	sess, err := s.Session(ctx)
	if err != nil {
		return domain.StatusLoggedOut, err
	}
	switch {
	case sess.Inconsistent():
		return domain.StatusInconsistent, nil
	case !sess.IsLoggedIn || sess.Token == "":
		return domain.StatusLoggedOut, nil
	case s.expired(sess.Token):
		return domain.StatusExpired, nil
	}
	return domain.StatusLoggedIn, nil
}

// RequireToken returns the stored token for an authenticated call.
// It fails with an AuthError of reason TokenMissing (matching
// domain.ErrTokenMissing) or TokenExpired, or with a StorageError.
func (s *Store) RequireToken(ctx context.Context) (string, error) {
	token, err := s.Token(ctx)
	if err != nil {
		return "", err
	}
	if token == "" {
		return "", &domain.AuthError{Reason: domain.TokenMissing}
	}
	if s.expired(token) {
		return "", &domain.AuthError{Reason: domain.TokenExpired}
	}
	return token, nil
}

func (s *Store) expired(token string) bool {
	exp, ok := TokenExpiry(token)
	return ok && !s.now().Before(exp)
}

// Watch republishes LoggedIn whenever another process changes the stored
// session. A failing watcher is restarted with exponential backoff. It
// blocks until ctx is done.
func (s *Store) Watch(ctx context.Context) error {
	w, ok := s.repo.(ports.SessionWatcher)
	if !ok {
		return ErrWatchUnsupported
	}
	onChange := func() {
		if err := s.Refresh(ctx); err == nil {
			s.logger.Debug("session changed externally", log.Bool("logged_in", s.loggedIn.Get()))
		}
	}

	b := newBackoff(s.watchDelay, watchBackoffMax)
	for {
		started := s.now()
		err := w.Watch(ctx, onChange)
		if ctx.Err() != nil {
			return nil
		}
		if err == nil {
			return nil
		}
		if s.now().Sub(started) > watchBackoffMax {
			b.reset()
		}
		s.logger.Warn("session watch failed, restarting", log.Err(err))
		if b.wait(ctx) != nil {
			return nil
		}
		// Pick up anything missed while the watcher was down.
		_ = s.Refresh(ctx)
	}
}
