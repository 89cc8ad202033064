package fs

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/bft-labs/distclient/internal/domain"
	"github.com/bft-labs/distclient/pkg/log"
)

// DefaultDebounce is how long Watch waits after the last file event before
// notifying.
const DefaultDebounce = 100 * time.Millisecond

// SessionFileRepository implements ports.SessionRepository using one JSON
// file per namespace.
type SessionFileRepository struct {
	dir       string
	namespace string
	logger    log.Logger
	debounce  time.Duration

	mu    sync.Mutex
	timer *time.Timer
}

// Option configures a SessionFileRepository.
type Option func(*SessionFileRepository)

// WithLogger sets the logger used for watcher errors.
func WithLogger(l log.Logger) Option {
	return func(r *SessionFileRepository) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithDebounce overrides DefaultDebounce.
func WithDebounce(d time.Duration) Option {
	return func(r *SessionFileRepository) {
		if d > 0 {
			r.debounce = d
		}
	}
}

// NewSessionFileRepository creates a repository storing <dir>/<namespace>.json.
func NewSessionFileRepository(dir, namespace string, opts ...Option) *SessionFileRepository {
	r := &SessionFileRepository{
		dir:       dir,
		namespace: namespace,
		logger:    log.Discard,
		debounce:  DefaultDebounce,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Load retrieves the stored session.
// Returns an empty session and nil error if no file exists.
func (r *SessionFileRepository) Load(ctx context.Context) (domain.Session, error) {
	data, err := os.ReadFile(r.Path())
	if err != nil {
		if os.IsNotExist(err) {
			return domain.Session{}, nil
		}
		return domain.Session{}, err
	}

	var s domain.Session
	if err := json.Unmarshal(data, &s); err != nil {
		return domain.Session{}, fmt.Errorf("decode %s: %w", r.Path(), err)
	}
	return s, nil
}

// Save persists the session atomically.
// Writes to a temp file in the same directory, then renames over the target.
func (r *SessionFileRepository) Save(ctx context.Context, s domain.Session) error {
	if err := os.MkdirAll(r.dir, 0o700); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(r.dir, r.namespace+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		os.Remove(tmpName)
		return err
	}

	if err := os.Rename(tmpName, r.Path()); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}

// Watch calls onChange, debounced, whenever the session file is written,
// replaced or removed. It blocks until ctx is done.
func (r *SessionFileRepository) Watch(ctx context.Context, onChange func()) error {
	if err := os.MkdirAll(r.dir, 0o700); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(r.dir); err != nil {
		return fmt.Errorf("watch %s: %w", r.dir, err)
	}

	target := filepath.Base(r.Path())
	for {
		select {
		case <-ctx.Done():
			r.stopTimer()
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			r.debounceNotify(ctx, onChange)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			r.logger.Warn("session watcher error", log.Err(err))
		}
	}
}

func (r *SessionFileRepository) debounceNotify(ctx context.Context, onChange func()) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.timer != nil {
		r.timer.Stop()
	}
	r.timer = time.AfterFunc(r.debounce, func() {
		if ctx.Err() == nil {
			onChange()
		}
	})
}

func (r *SessionFileRepository) stopTimer() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.timer != nil {
		r.timer.Stop()
	}
}

// Path returns the full path to the session file.
func (r *SessionFileRepository) Path() string {
	return filepath.Join(r.dir, r.namespace+".json")
}
