package api

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
)

// ChatLimiter records one attempt for key and reports whether it fits in the window.
type ChatLimiter interface {
	Allow(ctx context.Context, key string, now time.Time, limit int, window time.Duration) (bool, error)
}

type attemptLimiter struct {
	mu       sync.Mutex
	attempts map[string][]time.Time
}

func newAttemptLimiter() *attemptLimiter {
	return &attemptLimiter{
		attempts: make(map[string][]time.Time),
	}
}

func (limiter *attemptLimiter) Allow(_ context.Context, key string, now time.Time, limit int, window time.Duration) (bool, error) {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()

	pruned := limiter.pruneLocked(key, now, window)
	if len(pruned) >= limit {
		return false, nil
	}
	limiter.attempts[key] = append(pruned, now)
	return true, nil
}

func (limiter *attemptLimiter) pruneLocked(key string, now time.Time, window time.Duration) []time.Time {
	values := limiter.attempts[key]
	if len(values) == 0 {
		return []time.Time{}
	}

	threshold := now.Add(-window)
	pruned := make([]time.Time, 0, len(values))
	for _, value := range values {
		if value.After(threshold) {
			pruned = append(pruned, value)
		}
	}

	if len(pruned) == 0 {
		delete(limiter.attempts, key)
		return []time.Time{}
	}

	limiter.attempts[key] = pruned
	return pruned
}

func chatLimiterKey(c *fiber.Ctx, userID string) string {
	if key := strings.TrimSpace(userID); key != "" {
		return "user:" + key
	}
	key := strings.TrimSpace(c.IP())
	if key == "" {
		return "ip:unknown"
	}
	return "ip:" + key
}
