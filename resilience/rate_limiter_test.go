package resilience

import (
	"context"
	"testing"
	"time"
)

func TestRateLimiterAllow(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{Name: "test", Rate: 10, Burst: 2})

	if !rl.Allow() {
		t.Error("first request should be allowed")
	}
	if !rl.Allow() {
		t.Error("second request within burst should be allowed")
	}
	if rl.Allow() {
		t.Error("third request should exceed burst")
	}
}

func TestRateLimiterRefill(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{Name: "test", Rate: 100, Burst: 1})

	if !rl.Allow() {
		t.Fatal("first request should be allowed")
	}
	if rl.Allow() {
		t.Fatal("bucket should be empty")
	}

	time.Sleep(30 * time.Millisecond)
	if !rl.Allow() {
		t.Error("bucket should refill at 100/s")
	}
}

func TestRateLimiterWait(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{Name: "test", Rate: 50, Burst: 1})
	rl.Allow()

	start := time.Now()
	if err := rl.Wait(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if elapsed := time.Since(start); elapsed > 200*time.Millisecond {
		t.Errorf("waited %v, expected around 20ms", elapsed)
	}
}

func TestRateLimiterWaitCancelled(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{Name: "test", Rate: 0.1, Burst: 1})
	rl.Allow()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if err := rl.Wait(ctx); err != context.DeadlineExceeded {
		t.Errorf("err = %v, want DeadlineExceeded", err)
	}
}

func TestRateLimiterOnLimit(t *testing.T) {
	var limited string
	rl := NewRateLimiter(RateLimiterConfig{
		Name:    "lm-api",
		Rate:    10,
		Burst:   1,
		OnLimit: func(name string) { limited = name },
	})

	rl.Allow()
	rl.Allow()
	if limited != "lm-api" {
		t.Errorf("OnLimit name = %q, want lm-api", limited)
	}
}

func TestRateLimiterDefaults(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{Name: "test"})
	if rl.Rate() != 5.0 {
		t.Errorf("default rate = %v, want 5.0", rl.Rate())
	}
	if rl.Burst() != 5 {
		t.Errorf("default burst = %d, want rate", rl.Burst())
	}
}

func TestRateLimiterTokens(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{Name: "test", Rate: 10, Burst: 5})
	if got := rl.Tokens(); got < 4.9 {
		t.Errorf("initial tokens = %v, want full burst", got)
	}
	rl.Allow()
	if got := rl.Tokens(); got > 4.5 {
		t.Errorf("tokens after Allow = %v, want roughly 4", got)
	}
}
