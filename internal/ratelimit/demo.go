package ratelimit

import (
	"fmt"
	"time"

	cache "github.com/patrickmn/go-cache"
	"github.com/yourusername/sportology/internal/models"
)

// demoWindow is how long a demo counter lives before resetting
const demoWindow = 24 * time.Hour

// DemoLimiter throttles the unauthenticated demo endpoint per client
// IP. Counters live in memory with a daily expiry; losing them on
// restart just resets the allowance, which is acceptable for a demo.
type DemoLimiter struct {
	counters *cache.Cache
	limit    int
}

// NewDemoLimiter creates a per-IP demo limiter
func NewDemoLimiter(limit int) *DemoLimiter {
	return &DemoLimiter{
		counters: cache.New(demoWindow, 2*demoWindow),
		limit:    limit,
	}
}

// Allow consumes one demo call for the client IP, returning
// models.ErrRateLimited once the daily allowance is spent
func (l *DemoLimiter) Allow(clientIP string) error {
	count, err := l.counters.IncrementInt(clientIP, 1)
	if err != nil {
		// First call in this window.
		l.counters.Set(clientIP, 1, demoWindow)
		count = 1
	}

	if count > l.limit {
		return fmt.Errorf("%w: demo allows %d requests per day", models.ErrRateLimited, l.limit)
	}

	return nil
}

// Remaining reports how many demo calls the client IP has left
func (l *DemoLimiter) Remaining(clientIP string) int {
	v, found := l.counters.Get(clientIP)
	if !found {
		return l.limit
	}
	count, ok := v.(int)
	if !ok {
		return l.limit
	}
	if count >= l.limit {
		return 0
	}
	return l.limit - count
}
