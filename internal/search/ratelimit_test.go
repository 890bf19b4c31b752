package search

import (
	"testing"
	"time"
)

func TestRateLimiter(t *testing.T) {
	rl := NewIPRateLimiter(0.001, 2)
	if !rl.Allow("1.1.1.1") {
		t.Fatal("expected allow")
	}
	if !rl.Allow("1.1.1.1") {
		t.Fatal("expected allow")
	}
	if rl.Allow("1.1.1.1") {
		t.Fatal("expected deny")
	}
	if !rl.Allow("2.2.2.2") {
		t.Fatal("expected allow for a different key")
	}
}

func TestRateLimiterRefill(t *testing.T) {
	now := time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC)
	rl := NewIPRateLimiter(1, 1)
	rl.now = func() time.Time { return now }

	if !rl.Allow("k") {
		t.Fatal("expected allow")
	}
	if rl.Allow("k") {
		t.Fatal("expected deny")
	}
	now = now.Add(time.Second)
	if !rl.Allow("k") {
		t.Fatal("expected allow after refill")
	}
}

func TestRateLimiterSweep(t *testing.T) {
	now := time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC)
	rl := NewIPRateLimiter(1, 1)
	rl.now = func() time.Time { return now }

	rl.Allow("old")
	now = now.Add(10 * time.Minute)
	rl.Allow("fresh")

	if n := rl.Sweep(); n != 1 {
		t.Fatalf("expected 1 key swept, got %d", n)
	}
	if _, ok := rl.limiters["fresh"]; !ok {
		t.Fatal("fresh key should survive")
	}
}
