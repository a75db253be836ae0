package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// RateLimiter defines an interface for rate limiting functionality
type RateLimiter interface {
	// Allow checks if the request should be allowed based on the key
	Allow(ctx context.Context, key string) (bool, int, time.Time, error)
	// Reset resets the counter for a specific key
	Reset(ctx context.Context, key string) error
}

// RedisRateLimiter implements fixed-window rate limiting using Redis
type RedisRateLimiter struct {
	client      *redis.Client
	prefix      string
	window      time.Duration
	maxAttempts int64
}

// NewRedisRateLimiter creates a new rate limiter using Redis
func NewRedisRateLimiter(client *redis.Client, window time.Duration, maxAttempts int64) *RedisRateLimiter {
	return &RedisRateLimiter{
		client:      client,
		prefix:      "ratelimit:",
		window:      window,
		maxAttempts: maxAttempts,
	}
}

// Allow checks if the request should be allowed based on the key
func (rl *RedisRateLimiter) Allow(ctx context.Context, key string) (bool, int, time.Time, error) {
	redisKey := rl.prefix + key
	now := time.Now()
	windowStart := now.Truncate(rl.window)

	pipe := rl.client.Pipeline()
	incr := pipe.Incr(ctx, redisKey)
	pipe.ExpireAt(ctx, redisKey, windowStart.Add(rl.window))

	if _, err := pipe.Exec(ctx); err != nil {
		return false, 0, time.Time{}, fmt.Errorf("rate limiter error: %w", err)
	}

	count := incr.Val()
	remaining := rl.maxAttempts - count
	if remaining < 0 {
		remaining = 0
	}

	resetTime := windowStart.Add(rl.window)
	return count <= rl.maxAttempts, int(remaining), resetTime, nil
}

// Reset resets the counter for a specific key
func (rl *RedisRateLimiter) Reset(ctx context.Context, key string) error {
	return rl.client.Del(ctx, rl.prefix+key).Err()
}

// NoopRateLimiter allows everything. Used when Redis is not available.
type NoopRateLimiter struct{}

func (NoopRateLimiter) Allow(ctx context.Context, key string) (bool, int, time.Time, error) {
	return true, 0, time.Time{}, nil
}

func (NoopRateLimiter) Reset(ctx context.Context, key string) error {
	return nil
}
