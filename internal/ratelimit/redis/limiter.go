package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"brickvault/internal/config"
	"brickvault/internal/domain"
	"brickvault/internal/port"
)

// Counters live two days so a key created just before UTC midnight still
// expires on its own.
const counterTTL = 48 * time.Hour

type limiter struct {
	client     *redis.Client
	dailyLimit int
}

// NewLimiter creates a Redis-backed per-owner, per-UTC-day RateLimiter.
func NewLimiter(cfg *config.RedisConfig, dailyLimit int) (port.RateLimiter, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("connecting to redis: %w", err)
	}
	return &limiter{client: client, dailyLimit: dailyLimit}, nil
}

// NewLimiterWithClient wraps an existing client, sharing the connection
// with the cache adapter.
func NewLimiterWithClient(client *redis.Client, dailyLimit int) port.RateLimiter {
	return &limiter{client: client, dailyLimit: dailyLimit}
}

func (l *limiter) CheckLimit(ctx context.Context, ownerID uuid.UUID) (*port.QuotaStatus, error) {
	now := time.Now().UTC()

	count, err := l.client.Get(ctx, dailyKey(ownerID, now)).Int()
	if err != nil && err != redis.Nil {
		// Fail closed: an unreadable counter blocks uploads.
		return nil, fmt.Errorf("%w: rate limit check: %v", domain.ErrPersistence, err)
	}

	remaining := l.dailyLimit - count
	if remaining < 0 {
		remaining = 0
	}

	status := &port.QuotaStatus{
		Allowed:   count < l.dailyLimit,
		Remaining: remaining,
	}
	if !status.Allowed {
		status.RetryAfterSeconds = secondsUntilMidnightUTC(now)
	}
	return status, nil
}

func (l *limiter) Increment(ctx context.Context, ownerID uuid.UUID) error {
	key := dailyKey(ownerID, time.Now().UTC())

	pipe := l.client.TxPipeline()
	pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, counterTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("%w: rate limit increment: %v", domain.ErrPersistence, err)
	}
	return nil
}

func dailyKey(ownerID uuid.UUID, now time.Time) string {
	return fmt.Sprintf("uploads:%s:%s", ownerID, now.Format("2006-01-02"))
}

func secondsUntilMidnightUTC(now time.Time) int {
	midnight := now.Truncate(24 * time.Hour).Add(24 * time.Hour)
	return int(midnight.Sub(now).Seconds()) + 1
}
