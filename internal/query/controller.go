package query

import (
	"context"
	"sync/atomic"

	"github.com/bft-labs/distclient/internal/observe"
	"github.com/bft-labs/distclient/pkg/log"
)

// TokenResolver yields the token for an authenticated call or an error
// explaining why there is none. internal/session.Store satisfies it.
type TokenResolver interface {
	RequireToken(ctx context.Context) (string, error)
}

// Config wires a Controller.
type Config[P, R any] struct {
	// Name identifies the controller in logs
	Name string

	// Fetch performs the query
	Fetch func(ctx context.Context, params P) (R, error)

	// Validate rejects params before Loading is published (optional)
	Validate func(params P) error

	// IsEmpty classifies a successful result as Empty (optional)
	IsEmpty func(result R) bool

	// Tokens, when set, must yield a token before Fetch is called
	Tokens TokenResolver

	// Logger (optional)
	Logger log.Logger
}

// Controller owns one observable State. Overlapping Execute calls are
// allowed; only the most recently started one may publish.
type Controller[P, R any] struct {
	cfg    Config[P, R]
	logger log.Logger
	latest atomic.Uint64
	state  *observe.Value[State[R]]
}

// New creates a Controller in the Idle state.
func New[P, R any](cfg Config[P, R]) *Controller[P, R] {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Discard
	}
	return &Controller[P, R]{
		cfg:    cfg,
		logger: logger,
		state:  observe.NewValue(State[R]{Status: StatusIdle}),
	}
}

// State is the observable view-state.
func (c *Controller[P, R]) State() *observe.Value[State[R]] {
	return c.state
}

// Current returns the latest published state.
func (c *Controller[P, R]) Current() State[R] {
	return c.state.Get()
}

// Execute runs one query and returns the terminal state it computed. That
// state is published only if no later Execute or Reset has started.
func (c *Controller[P, R]) Execute(ctx context.Context, params P) State[R] {
	seq := c.latest.Add(1)

	if c.cfg.Validate != nil {
		if err := c.cfg.Validate(params); err != nil {
			return c.finish(seq, State[R]{Status: StatusError, Err: err})
		}
	}

	c.publish(State[R]{Status: StatusLoading, Seq: seq})

	if c.cfg.Tokens != nil {
		if _, err := c.cfg.Tokens.RequireToken(ctx); err != nil {
			return c.finish(seq, State[R]{Status: StatusError, Err: err})
		}
	}

	data, err := c.cfg.Fetch(ctx, params)
	switch {
	case err != nil:
		return c.finish(seq, State[R]{Status: StatusError, Err: err})
	case c.cfg.IsEmpty != nil && c.cfg.IsEmpty(data):
		return c.finish(seq, State[R]{Status: StatusEmpty, Data: data})
	default:
		return c.finish(seq, State[R]{Status: StatusSuccess, Data: data})
	}
}

// Launch runs Execute in a new goroutine. The channel receives the
// terminal state and is then closed.
func (c *Controller[P, R]) Launch(ctx context.Context, params P) <-chan State[R] {
	ch := make(chan State[R], 1)
	go func() {
		defer close(ch)
		ch <- c.Execute(ctx, params)
	}()
	return ch
}

// Reset returns to Idle and supersedes any in-flight Execute.
func (c *Controller[P, R]) Reset() {
	seq := c.latest.Add(1)
	c.publish(State[R]{Status: StatusIdle, Seq: seq})
}

func (c *Controller[P, R]) finish(seq uint64, st State[R]) State[R] {
	st.Seq = seq
	if !c.publish(st) {
		c.logger.Debug("discarding stale result",
			log.String("query", c.cfg.Name),
			log.Uint64("seq", seq),
			log.String("status", st.Status.String()),
		)
		return st
	}
	if st.Status == StatusError {
		c.logger.Debug("query failed",
			log.String("query", c.cfg.Name),
			log.Uint64("seq", seq),
			log.Err(st.Err),
		)
	}
	return st
}

// publish stores st if its sequence is still the latest issued. The check
// and the store happen under the value's delivery lock.
func (c *Controller[P, R]) publish(st State[R]) bool {
	return c.state.Update(func(State[R]) (State[R], bool) {
		return st, st.Seq == c.latest.Load()
	})
}
