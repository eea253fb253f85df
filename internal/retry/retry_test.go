package retry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/roleradar/roleradar/internal/model"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestDo_SucceedsFirstTry(t *testing.T) {
	calls := 0
	out, err := Do(context.Background(), discardLogger(), 2, time.Millisecond,
		func(ctx context.Context) (string, error) {
			calls++
			return "ok", nil
		})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "ok" || calls != 1 {
		t.Errorf("out=%q calls=%d, want ok/1", out, calls)
	}
}

func TestDo_RetriesTransientThenSucceeds(t *testing.T) {
	calls := 0
	out, err := Do(context.Background(), discardLogger(), 3, time.Millisecond,
		func(ctx context.Context) (int, error) {
			calls++
			if calls < 3 {
				return 0, &model.HTTPError{StatusCode: 503}
			}
			return 42, nil
		})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != 42 || calls != 3 {
		t.Errorf("out=%d calls=%d, want 42/3", out, calls)
	}
}

func TestDo_NonRetryableStopsImmediately(t *testing.T) {
	calls := 0
	_, err := Do(context.Background(), discardLogger(), 3, time.Millisecond,
		func(ctx context.Context) (int, error) {
			calls++
			return 0, &model.HTTPError{StatusCode: 404}
		})
	if err == nil {
		t.Fatal("expected error")
	}
	if calls != 1 {
		t.Errorf("expected 1 call for non-retryable 404, got %d", calls)
	}
}

func TestDo_ExhaustsRetries(t *testing.T) {
	calls := 0
	wantErr := fmt.Errorf("dial tcp: connection refused")
	_, err := Do(context.Background(), discardLogger(), 2, time.Millisecond,
		func(ctx context.Context) (int, error) {
			calls++
			return 0, wantErr
		})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected the last error back, got %v", err)
	}
	if calls != 3 {
		t.Errorf("expected 3 calls (1 + 2 retries), got %d", calls)
	}
}

func TestDo_RetryAfterTakesPrecedence(t *testing.T) {
	got := backoffDelay(time.Second, 1, &model.HTTPError{
		StatusCode: 429,
		RetryAfter: 250 * time.Millisecond,
	})
	if got != 250*time.Millisecond {
		t.Errorf("expected Retry-After to win, got %v", got)
	}
}

func TestDo_ContextCancelledNotRetried(t *testing.T) {
	calls := 0
	_, err := Do(context.Background(), discardLogger(), 3, time.Millisecond,
		func(ctx context.Context) (int, error) {
			calls++
			return 0, context.DeadlineExceeded
		})
	if err == nil {
		t.Fatal("expected error")
	}
	if calls != 1 {
		t.Errorf("expected no retries on context errors, got %d calls", calls)
	}
}
