package distclient

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bft-labs/distclient/internal/domain"
)

// Session backends.
const (
	SessionBackendFile   = "file"
	SessionBackendSQLite = "sqlite"
	SessionBackendRedis  = "redis"
)

// Defaults.
const (
	DefaultTimeout   = 30 * time.Second
	DefaultNamespace = "user_prefs"
	DefaultRedisAddr = "localhost:6379"
)

// Config holds the client configuration.
// Use DefaultConfig() to get a Config with sensible defaults.
type Config struct {
	// BaseURL is the backend root, e.g. https://api.example.com (required)
	BaseURL string

	// Timeout bounds each HTTP request
	Timeout time.Duration

	// SessionBackend selects where the session is persisted: file, sqlite or redis
	SessionBackend string

	// SessionDir holds the session file or database (file and sqlite backends)
	SessionDir string

	// Namespace separates sessions sharing one store
	Namespace string

	// RedisAddr, RedisPassword and RedisDB configure the redis backend
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// UserAgent is sent with every request (optional)
	UserAgent string
}

// DefaultConfig returns a Config with sensible default values.
// BaseURL must still be set.
func DefaultConfig() Config {
	var cfg Config
	cfg.SetDefaults()
	return cfg
}

// DefaultSessionDir is ~/.distclient, or .distclient when the home
// directory is unknown.
func DefaultSessionDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".distclient"
	}
	return filepath.Join(home, ".distclient")
}

// SetDefaults fills zero fields.
func (c *Config) SetDefaults() {
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}
	if c.SessionBackend == "" {
		c.SessionBackend = SessionBackendFile
	}
	if c.SessionDir == "" {
		c.SessionDir = DefaultSessionDir()
	}
	if c.Namespace == "" {
		c.Namespace = DefaultNamespace
	}
	if c.RedisAddr == "" {
		c.RedisAddr = DefaultRedisAddr
	}
	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
}

// Validate checks the configuration. Errors wrap domain.ErrInvalidConfig.
func (c Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("%w: base URL is required", domain.ErrInvalidConfig)
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: base URL %q must be an absolute http(s) URL", domain.ErrInvalidConfig, c.BaseURL)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("%w: timeout must not be negative", domain.ErrInvalidConfig)
	}
	switch c.SessionBackend {
	case SessionBackendFile, SessionBackendSQLite:
		if c.SessionDir == "" {
			return fmt.Errorf("%w: session directory is required for the %s backend", domain.ErrInvalidConfig, c.SessionBackend)
		}
	case SessionBackendRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("%w: redis address is required", domain.ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown session backend %q", domain.ErrInvalidConfig, c.SessionBackend)
	}
	if strings.ContainsAny(c.Namespace, `/\:`) || c.Namespace == "" {
		return fmt.Errorf("%w: invalid namespace %q", domain.ErrInvalidConfig, c.Namespace)
	}
	return nil
}
