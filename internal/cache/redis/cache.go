package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"brickvault/internal/config"
	"brickvault/internal/port"
)

type cache struct {
	client *redis.Client
}

// NewCache creates a Redis-backed Cache used only for invalidation.
func NewCache(cfg *config.RedisConfig) (port.Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("connecting to redis: %w", err)
	}
	return &cache{client: client}, nil
}

// NewCacheWithClient wraps an existing client.
func NewCacheWithClient(client *redis.Client) port.Cache {
	return &cache{client: client}
}

func (c *cache) Invalidate(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("cache invalidate: %w", err)
	}
	return nil
}
