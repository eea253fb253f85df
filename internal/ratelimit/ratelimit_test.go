package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestWait_SameSource_EnforcesMinDelay(t *testing.T) {
	limiter := New(100*time.Millisecond, nil)
	ctx := context.Background()

	// First call should return immediately.
	if err := limiter.Wait(ctx, "Seek"); err != nil {
		t.Fatalf("first wait: %v", err)
	}

	start := time.Now()
	if err := limiter.Wait(ctx, "Seek"); err != nil {
		t.Fatalf("second wait: %v", err)
	}
	elapsed := time.Since(start)

	// Should have waited at least ~100ms (allow 80ms for timer jitter).
	if elapsed < 80*time.Millisecond {
		t.Errorf("expected >= 80ms wait, got %v", elapsed)
	}
}

func TestWait_DifferentSources_NoCrossBlocking(t *testing.T) {
	limiter := New(200*time.Millisecond, nil)
	ctx := context.Background()

	if err := limiter.Wait(ctx, "Seek"); err != nil {
		t.Fatalf("Seek wait: %v", err)
	}

	// Immediately call for Indeed — should NOT block.
	start := time.Now()
	if err := limiter.Wait(ctx, "Indeed"); err != nil {
		t.Fatalf("Indeed wait: %v", err)
	}
	elapsed := time.Since(start)

	if elapsed > 50*time.Millisecond {
		t.Errorf("expected Indeed wait to be near-instant, got %v", elapsed)
	}
}

func TestWait_SourceOverride(t *testing.T) {
	limiter := New(10*time.Millisecond, map[string]time.Duration{
		"LinkedIn": 150 * time.Millisecond,
	})
	ctx := context.Background()

	if got := limiter.DelayFor("LinkedIn"); got != 150*time.Millisecond {
		t.Errorf("DelayFor(LinkedIn) = %v, want 150ms", got)
	}
	if got := limiter.DelayFor("Seek"); got != 10*time.Millisecond {
		t.Errorf("DelayFor(Seek) = %v, want 10ms", got)
	}

	if err := limiter.Wait(ctx, "LinkedIn"); err != nil {
		t.Fatalf("first wait: %v", err)
	}
	start := time.Now()
	if err := limiter.Wait(ctx, "LinkedIn"); err != nil {
		t.Fatalf("second wait: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 120*time.Millisecond {
		t.Errorf("expected override delay to apply, waited only %v", elapsed)
	}
}

func TestWait_ContextCancellation(t *testing.T) {
	limiter := New(5*time.Second, nil) // long delay
	ctx := context.Background()

	// First call to seed the last-call time.
	if err := limiter.Wait(ctx, "Seek"); err != nil {
		t.Fatalf("first wait: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // cancel immediately

	if err := limiter.Wait(ctx, "Seek"); err == nil {
		t.Fatal("expected error from cancelled context, got nil")
	}
}
