package app

import (
	"context"
	"math/rand"
	"time"
)

// Read retry bounds for a failing path source.
const (
	DefaultBackoffInitial = 500 * time.Millisecond
	DefaultBackoffMax     = 10 * time.Second
)

// backoff doubles the wait after every consecutive source error, capped at
// max, with +/-20% jitter.
type backoff struct {
	initial, max, cur time.Duration
}

func newBackoff(initial, max time.Duration) *backoff {
	initial = min(initial, max)
	return &backoff{initial: initial, max: max, cur: initial}
}

func (b *backoff) next() time.Duration {
	d := b.cur + time.Duration(float64(b.cur)*0.2*(2*rand.Float64()-1))
	b.cur = min(2*b.cur, b.max)
	return d
}

// Wait sleeps for the next delay. It returns false if ctx ended first.
func (b *backoff) Wait(ctx context.Context) bool {
	t := time.NewTimer(b.next())
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// Reset is called after a successful read.
func (b *backoff) Reset() {
	b.cur = b.initial
}
