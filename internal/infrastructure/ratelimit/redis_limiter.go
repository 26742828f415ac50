package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/firstcreditunion/loan-status-hub-sub000/domain"
)

// RedisLimiterImpl implements domain.RateLimiter with a fixed window
// counter per (identifier type, action, identifier) key. INCR keeps the
// check-and-increment atomic across concurrent requests sharing a key.
type RedisLimiterImpl struct {
	client *redis.Client
	prefix string
}

// NewRedisLimiter creates a Redis-backed rate limiter.
func NewRedisLimiter(client *redis.Client) domain.RateLimiter {
	return &RedisLimiterImpl{client: client, prefix: "ratelimit:"}
}

// Check implements domain.RateLimiter. When Redis is unavailable the
// request is allowed through with FailedOpen set and the cause returned,
// so callers can record the degraded state instead of blocking
// legitimate users on an infrastructure failure.
func (l *RedisLimiterImpl) Check(ctx context.Context, identifier string, identifierType domain.IdentifierType, action domain.ActionType, maxRequests int, window time.Duration) (*domain.RateLimitResult, error) {
	key := fmt.Sprintf("%s%s:%s:%s", l.prefix, identifierType, action, identifier)
	now := time.Now()

	count, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return failOpen(now, window), fmt.Errorf("rate limit counter unavailable: %w", err)
	}

	// First request in the window owns setting the expiry.
	if count == 1 {
		if err := l.client.Expire(ctx, key, window).Err(); err != nil {
			return failOpen(now, window), fmt.Errorf("rate limit expiry unavailable: %w", err)
		}
	}

	resetTime := now.Add(window)
	if ttl, err := l.client.TTL(ctx, key).Result(); err == nil && ttl > 0 {
		resetTime = now.Add(ttl)
	}

	result := &domain.RateLimitResult{
		Allowed:         count <= int64(maxRequests),
		Remaining:       maxRequests - int(count),
		ResetTime:       resetTime,
		CurrentRequests: int(count),
	}
	if result.Remaining < 0 {
		result.Remaining = 0
	}
	return result, nil
}

func failOpen(now time.Time, window time.Duration) *domain.RateLimitResult {
	return &domain.RateLimitResult{
		Allowed:    true,
		Remaining:  0,
		ResetTime:  now.Add(window),
		FailedOpen: true,
	}
}
