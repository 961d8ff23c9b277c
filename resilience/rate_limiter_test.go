package resilience

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
)

func newFakeLimiter(rate float64, burst int) (*RateLimiter, clockwork.FakeClock) {
	clock := clockwork.NewFakeClock()
	return NewRateLimiter(RateLimiterConfig{Name: "zoom", Rate: rate, Burst: burst, Clock: clock}), clock
}

func TestRateLimiter_BurstThenLimited(t *testing.T) {
	rl, _ := newFakeLimiter(2, 3)

	for i := 0; i < 3; i++ {
		if !rl.Allow() {
			t.Fatalf("request %d within burst was limited", i+1)
		}
	}
	if rl.Allow() {
		t.Error("request beyond burst should be limited")
	}
}

func TestRateLimiter_RefillFollowsClock(t *testing.T) {
	rl, clock := newFakeLimiter(2, 2)
	rl.AllowN(2)

	clock.Advance(250 * time.Millisecond)
	if rl.Allow() {
		t.Error("half a token is not enough")
	}

	clock.Advance(250 * time.Millisecond)
	if !rl.Allow() {
		t.Error("one token should have refilled after 500ms at 2/s")
	}

	clock.Advance(time.Hour)
	if got := rl.Tokens(); got != 2 {
		t.Errorf("tokens should cap at burst, got %v", got)
	}
}

func TestRateLimiter_WaitBlocksUntilRefill(t *testing.T) {
	rl, clock := newFakeLimiter(1, 1)
	rl.Allow()

	done := make(chan error, 1)
	go func() { done <- rl.Wait(context.Background()) }()

	clock.BlockUntil(1)
	select {
	case <-done:
		t.Fatal("Wait returned before the clock advanced")
	default:
	}

	clock.Advance(time.Second)
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Wait: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Wait did not return after refill")
	}
}

func TestRateLimiter_WaitReservesTokens(t *testing.T) {
	rl, clock := newFakeLimiter(1, 1)
	rl.Allow()

	go func() { _ = rl.Wait(context.Background()) }()
	clock.BlockUntil(1)

	// The pending waiter owns the next token.
	if got := rl.Tokens(); got >= 0 {
		t.Errorf("expected a negative balance while a waiter is pending, got %v", got)
	}
	clock.Advance(time.Second)
}

func TestRateLimiter_WaitCanceled(t *testing.T) {
	rl, clock := newFakeLimiter(1, 1)
	rl.Allow()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- rl.Wait(ctx) }()

	clock.BlockUntil(1)
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Wait ignored cancellation")
	}
}

func TestRateLimiter_OnLimit(t *testing.T) {
	var limited []string
	rl := NewRateLimiter(RateLimiterConfig{
		Name:    "zoom-api",
		Rate:    1,
		Burst:   1,
		Clock:   clockwork.NewFakeClock(),
		OnLimit: func(name string) { limited = append(limited, name) },
	})

	rl.Allow()
	rl.Allow()
	rl.AllowN(5)

	if len(limited) != 2 || limited[0] != "zoom-api" {
		t.Errorf("expected two limit callbacks for zoom-api, got %v", limited)
	}
}

func TestRateLimiter_Defaults(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{Rate: 0.5})
	if rl.Burst() != 1 {
		t.Errorf("sub-1 rate should still allow a burst of 1, got %d", rl.Burst())
	}

	rl = NewRateLimiter(RateLimiterConfig{})
	if rl.Rate() != 10 || rl.Burst() != 10 {
		t.Errorf("unexpected defaults rate=%v burst=%d", rl.Rate(), rl.Burst())
	}

	cfg := DefaultRateLimiterConfig("zoom")
	if cfg.Name != "zoom" || cfg.Rate != 10 || cfg.Burst != 20 {
		t.Errorf("unexpected default config %+v", cfg)
	}
}
