package distclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/bft-labs/distclient/internal/adapters/fs"
	httpAdapter "github.com/bft-labs/distclient/internal/adapters/http"
	redisAdapter "github.com/bft-labs/distclient/internal/adapters/redis"
	"github.com/bft-labs/distclient/internal/adapters/sqlite"
	"github.com/bft-labs/distclient/internal/domain"
	"github.com/bft-labs/distclient/internal/query"
	"github.com/bft-labs/distclient/internal/repository"
	"github.com/bft-labs/distclient/internal/session"
	"github.com/bft-labs/distclient/pkg/log"
)

// Client is the authenticated data-access layer: a session store, the
// backend API behind an authenticating pipeline, and one query controller
// per screen.
type Client struct {
	config  Config
	logger  log.Logger
	session *session.Store
	api     *httpAdapter.Client

	// Dashboard, Partners, Products, Operations and Operation each own an
	// observable view-state.
	Dashboard  *query.DashboardController
	Partners   *query.PartnerController
	Products   *query.ProductController
	Operations *query.OperationController
	Operation  *query.OperationDetailController

	closers []io.Closer

	mu     sync.Mutex
	closed bool
}

// New creates a Client. The persisted session is loaded once so that
// LoggedIn reflects it; a storage failure is logged and treated as logged
// out.
func New(ctx context.Context, cfg Config, opts ...Option) (*Client, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	c := &Client{config: cfg, logger: o.logger}

	repo := o.repo
	if repo == nil {
		var err error
		if repo, err = c.openRepository(ctx); err != nil {
			return nil, err
		}
	}

	storeOpts := []session.Option{session.WithLogger(o.logger)}
	if o.clock != nil {
		storeOpts = append(storeOpts, session.WithClock(o.clock))
	}
	c.session = session.New(repo, storeOpts...)

	c.api = httpAdapter.NewClient(httpAdapter.Config{
		BaseURL:    cfg.BaseURL,
		Timeout:    cfg.Timeout,
		HTTPClient: o.httpClient,
		UserAgent:  cfg.UserAgent,
	}, c.session, o.logger)

	dashboards := repository.NewDashboard(c.api)
	partners := repository.NewPartners(c.api)
	products := repository.NewProducts(c.api)
	operations := repository.NewOperations(c.api)

	c.Dashboard = query.NewDashboard(dashboards, o.logger)
	c.Partners = query.NewPartners(partners, c.session, o.logger)
	c.Products = query.NewProducts(products, c.session, o.logger)
	c.Operations = query.NewOperations(operations, c.session, o.logger)
	c.Operation = query.NewOperationDetail(operations, c.session, o.logger)

	_ = c.session.Refresh(ctx)

	c.logger.Debug("client ready",
		log.String("base_url", cfg.BaseURL),
		log.String("session_backend", cfg.SessionBackend),
	)
	return c, nil
}

func (c *Client) openRepository(ctx context.Context) (SessionRepository, error) {
	switch c.config.SessionBackend {
	case SessionBackendSQLite:
		repo, err := sqlite.Open(ctx, c.config.SessionDir, c.config.Namespace)
		if err != nil {
			return nil, &domain.StorageError{Op: "open", Err: err}
		}
		c.closers = append(c.closers, repo)
		return repo, nil
	case SessionBackendRedis:
		kv := redisAdapter.NewRedisKV(redisAdapter.NewClient(c.config.RedisAddr, c.config.RedisPassword, c.config.RedisDB))
		c.closers = append(c.closers, kv)
		return redisAdapter.NewSessionRepository(kv, c.config.Namespace), nil
	default:
		return fs.NewSessionFileRepository(c.config.SessionDir, c.config.Namespace, fs.WithLogger(c.logger)), nil
	}
}

// Session exposes the session store.
func (c *Client) Session() *session.Store {
	return c.session
}

// Login exchanges credentials for a token and stores it.
func (c *Client) Login(ctx context.Context, email, password string) error {
	if err := c.checkOpen(); err != nil {
		return err
	}
	tok, err := c.api.Login(ctx, domain.Credentials{Email: email, Password: password})
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	if err := c.session.Establish(ctx, tok.AccessToken); err != nil {
		return fmt.Errorf("login: %w", err)
	}
	c.logger.Info("logged in", log.String("email", email))
	return nil
}

// Logout revokes the token on the server, then clears the local session.
// The local session is cleared even if revocation fails.
func (c *Client) Logout(ctx context.Context) error {
	if err := c.checkOpen(); err != nil {
		return err
	}
	token, _ := c.session.Token(ctx)
	if token != "" {
		if err := c.api.Logout(ctx); err != nil {
			c.logger.Warn("server-side logout failed", log.Err(err))
		}
	}
	if err := c.session.Clear(ctx); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	for _, ctl := range []interface{ Reset() }{c.Dashboard, c.Partners, c.Products, c.Operations, c.Operation} {
		ctl.Reset()
	}
	c.logger.Info("logged out")
	return nil
}

// Me returns the account behind the stored token.
func (c *Client) Me(ctx context.Context) (domain.User, error) {
	if err := c.checkOpen(); err != nil {
		return domain.User{}, err
	}
	if _, err := c.session.RequireToken(ctx); err != nil {
		return domain.User{}, err
	}
	return c.api.Me(ctx)
}

// Status classifies the stored session.
func (c *Client) Status(ctx context.Context) (domain.SessionStatus, error) {
	return c.session.Check(ctx)
}

// WatchSession republishes LoggedIn when another process logs in or out.
// It blocks until ctx is done.
func (c *Client) WatchSession(ctx context.Context) error {
	return c.session.Watch(ctx)
}

// Close releases the session backend.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true

	var errs []error
	for _, cl := range c.closers {
		if err := cl.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (c *Client) checkOpen() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return domain.ErrClosed
	}
	return nil
}
