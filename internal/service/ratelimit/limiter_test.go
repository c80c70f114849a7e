package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestAllowConsumesBurst(t *testing.T) {
	l := New()
	fixed := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return fixed }

	if !l.Allow("host", 2, 1) || !l.Allow("host", 2, 1) {
		t.Fatalf("expected burst of 2")
	}
	if l.Allow("host", 2, 1) {
		t.Fatalf("expected bucket to be empty")
	}
	if !l.Allow("other", 2, 1) {
		t.Fatalf("keys must not share a bucket")
	}

	fixed = fixed.Add(time.Second)
	if !l.Allow("host", 2, 1) {
		t.Fatalf("expected refill after one second")
	}
}

func TestWaitHonoursContext(t *testing.T) {
	l := New()
	fixed := time.Now()
	l.now = func() time.Time { return fixed }
	if err := l.Wait(context.Background(), "host", 1, 0.001); err != nil {
		t.Fatalf("first token must be immediate: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := l.Wait(ctx, "host", 1, 0.001); err == nil {
		t.Fatalf("expected context error")
	}
}

func TestWaitDisabled(t *testing.T) {
	if err := New().Wait(context.Background(), "host", 1, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
