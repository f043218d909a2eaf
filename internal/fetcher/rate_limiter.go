package fetcher

import (
	"context"
	"sync"
	"time"
)

// RateLimiter enforces a minimum interval between requests to the same
// host. The run is strictly sequential, so a simple politeness delay is
// all that is needed.
type RateLimiter struct {
	minDelay time.Duration
	next     map[string]time.Time
	mu       sync.Mutex
}

func NewRateLimiter(minDelay time.Duration) *RateLimiter {
	return &RateLimiter{
		minDelay: minDelay,
		next:     make(map[string]time.Time),
	}
}

func (rl *RateLimiter) Wait(ctx context.Context, host string) error {
	rl.mu.Lock()
	now := time.Now()
	var wait time.Duration
	if next, ok := rl.next[host]; ok && next.After(now) {
		wait = next.Sub(now)
	}
	rl.next[host] = now.Add(wait + rl.minDelay)
	rl.mu.Unlock()

	if wait <= 0 {
		return nil
	}

	select {
	case <-time.After(wait):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
