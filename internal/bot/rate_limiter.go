package bot

import (
	"sync"
	"time"

	"github.com/samber/lo"
)

const (
	rateLimitMaxCommands = 5
	rateLimitWindow      = 60 * time.Second
)

// RateLimiter caps commands per user over a sliding window.
type RateLimiter struct {
	mu       sync.Mutex
	requests map[string][]time.Time
	max      int
	window   time.Duration
	now      func() time.Time
}

func NewRateLimiter() *RateLimiter {
	return NewRateLimiterWith(rateLimitMaxCommands, rateLimitWindow)
}

func NewRateLimiterWith(max int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		requests: make(map[string][]time.Time),
		max:      max,
		window:   window,
		now:      time.Now,
	}
}

func (r *RateLimiter) Allow(userID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	cutoff := now.Add(-r.window)

	pruned := lo.Filter(r.requests[userID], func(t time.Time, _ int) bool {
		return t.After(cutoff)
	})

	if len(pruned) >= r.max {
		r.requests[userID] = pruned
		return false
	}

	r.requests[userID] = append(pruned, now)
	return true
}

// RetryAfter reports how long userID must wait before the next command is allowed.
func (r *RateLimiter) RetryAfter(userID string) time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()

	timestamps := r.requests[userID]
	if len(timestamps) < r.max {
		return 0
	}
	oldest := timestamps[len(timestamps)-r.max]
	return max(0, oldest.Add(r.window).Sub(r.now()))
}
