// Package retry runs a fetch with exponential backoff and jitter on
// transient failures. Used by the JSON API adapters, whose GETs are
// idempotent; HTML sources are never retried — a bot-detection block
// won't clear in seconds and hammering invites a harder block.
package retry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/roleradar/roleradar/internal/model"
)

// Do calls fn, retrying transient failures up to maxRetries additional
// times. baseDelay is the delay before the first retry, doubled on each
// subsequent one, with ±30% jitter. An HTTP 429 Retry-After duration
// takes precedence over the computed backoff.
func Do[T any](ctx context.Context, logger *slog.Logger, maxRetries int, baseDelay time.Duration, fn func(context.Context) (T, error)) (T, error) {
	var zero T

	out, err := fn(ctx)
	if err == nil {
		return out, nil
	}
	if !isRetryable(err) {
		return zero, err
	}

	lastErr := err
	for attempt := 1; attempt <= maxRetries; attempt++ {
		delay := backoffDelay(baseDelay, attempt, lastErr)

		logger.Warn("retrying after transient error",
			"attempt", attempt,
			"max_retries", maxRetries,
			"delay", delay,
			"error", lastErr,
		)

		select {
		case <-ctx.Done():
			return zero, fmt.Errorf("retry cancelled: %w", ctx.Err())
		case <-time.After(delay):
		}

		out, err = fn(ctx)
		if err == nil {
			return out, nil
		}
		if !isRetryable(err) {
			return zero, err
		}
		lastErr = err
	}

	return zero, lastErr
}

// backoffDelay computes the delay for a given attempt with ±30% jitter.
func backoffDelay(baseDelay time.Duration, attempt int, err error) time.Duration {
	var httpErr *model.HTTPError
	if errors.As(err, &httpErr) && httpErr.RetryAfter > 0 {
		return httpErr.RetryAfter
	}

	// Exponential: baseDelay * 2^(attempt-1)
	delay := baseDelay
	for i := 1; i < attempt; i++ {
		delay *= 2
	}

	jitter := float64(delay) * 0.3
	return time.Duration(float64(delay) + (rand.Float64()*2-1)*jitter)
}

// isRetryable returns true if the error represents a transient failure
// worth retrying.
func isRetryable(err error) bool {
	if err == nil {
		return false
	}

	// Context cancellation — never retry.
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var httpErr *model.HTTPError
	if errors.As(err, &httpErr) {
		// 429 and 5xx — retryable; other 4xx — not.
		if httpErr.StatusCode == 429 {
			return true
		}
		return httpErr.StatusCode >= 500
	}

	// Non-HTTP errors (network, DNS, etc.) — retryable.
	return true
}
