package session

import (
	"context"
	"math/rand"
	"time"
)

// Watch restart delays.
const (
	watchBackoffInitial = 500 * time.Millisecond
	watchBackoffMax     = 30 * time.Second
)

// backoff is exponential with ±20% jitter.
type backoff struct {
	initial time.Duration
	max     time.Duration
	current time.Duration
}

func newBackoff(initial, max time.Duration) *backoff {
	return &backoff{initial: initial, max: max, current: initial}
}

// wait sleeps for the current delay, then doubles it up to max.
// It returns ctx.Err() if ctx ends first.
func (b *backoff) wait(ctx context.Context) error {
	jitter := float64(b.current) * 0.2 * (rand.Float64()*2 - 1)
	t := time.NewTimer(time.Duration(float64(b.current) + jitter))
	defer t.Stop()

	b.current *= 2
	if b.current > b.max {
		b.current = b.max
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (b *backoff) reset() {
	b.current = b.initial
}
