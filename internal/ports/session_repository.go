package ports

import (
	"context"

	"github.com/bft-labs/distclient/internal/domain"
)

// SessionRepository handles session persistence across restarts.
type SessionRepository interface {
	// Load retrieves the stored session.
	// Returns an empty session and nil error if nothing was stored yet.
	// Returns an error only for actual read failures.
	Load(ctx context.Context) (domain.Session, error)

	// Save persists both session keys in one atomic write.
	// A concurrent Load observes either the old or the new session, never a mix.
	Save(ctx context.Context, s domain.Session) error
}

// SessionWatcher is implemented by repositories that can observe changes
// made outside this process.
type SessionWatcher interface {
	// Watch calls onChange after the stored session changes, until ctx is done.
	Watch(ctx context.Context, onChange func()) error
}
