// Package ratelimit enforces the per-source politeness delay. Sources
// block clients that fire consecutive queries back to back, so this is a
// correctness requirement, not an optimization.
package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// SourceRateLimiter enforces a minimum delay between consecutive requests
// to the same source. Different sources never block each other.
type SourceRateLimiter struct {
	mu        sync.Mutex
	lastCall  map[string]time.Time // key: source name
	minDelay  time.Duration
	overrides map[string]time.Duration // per-source overrides
}

// New creates a rate limiter with a default delay and optional per-source
// overrides (e.g. LinkedIn needs a longer gap than Adzuna).
func New(minDelay time.Duration, overrides map[string]time.Duration) *SourceRateLimiter {
	return &SourceRateLimiter{
		lastCall:  make(map[string]time.Time),
		minDelay:  minDelay,
		overrides: overrides,
	}
}

// DelayFor returns the configured delay for the given source, falling
// back to the default.
func (r *SourceRateLimiter) DelayFor(source string) time.Duration {
	if d, ok := r.overrides[source]; ok {
		return d
	}
	return r.minDelay
}

// Wait blocks until enough time has passed since the last request to the
// given source. Returns an error if the context is cancelled while waiting.
func (r *SourceRateLimiter) Wait(ctx context.Context, source string) error {
	delay := r.DelayFor(source)

	r.mu.Lock()
	last, ok := r.lastCall[source]
	now := time.Now()

	if !ok {
		// First request for this source — no wait needed.
		r.lastCall[source] = now
		r.mu.Unlock()
		return nil
	}

	elapsed := now.Sub(last)
	if elapsed >= delay {
		r.lastCall[source] = now
		r.mu.Unlock()
		return nil
	}

	remaining := delay - elapsed
	r.mu.Unlock()

	select {
	case <-ctx.Done():
		return fmt.Errorf("rate limiter wait for %s: %w", source, ctx.Err())
	case <-time.After(remaining):
	}

	r.mu.Lock()
	r.lastCall[source] = time.Now()
	r.mu.Unlock()

	return nil
}
