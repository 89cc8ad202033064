package distclient

import (
	"net/http"
	"time"

	"github.com/bft-labs/distclient/internal/ports"
	"github.com/bft-labs/distclient/pkg/log"
)

// SessionRepository persists the session. Implementations must save both
// fields atomically.
type SessionRepository = ports.SessionRepository

// Option configures optional behavior of Client.
type Option func(*options)

type options struct {
	httpClient *http.Client
	logger     log.Logger
	repo       SessionRepository
	clock      func() time.Time
}

func defaultOptions() options {
	return options{logger: log.Discard}
}

// WithHTTPClient sets a custom HTTP client for API communication.
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) {
		o.httpClient = client
	}
}

// WithLogger sets a custom logger for structured logging.
// If not provided, a no-op logger is used (no output).
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithSessionRepository overrides Config.SessionBackend with repo.
func WithSessionRepository(repo SessionRepository) Option {
	return func(o *options) {
		o.repo = repo
	}
}

// WithClock overrides time.Now for token expiry checks.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.clock = now
	}
}
