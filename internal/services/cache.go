package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"clarityhire/internal/config"
)

// MatchCache fronts the sorted match lists with a short-TTL response cache.
// The per-pair score cache in Postgres stays authoritative; this layer only
// spares recomputing the list fan-out on hot jobs.
type MatchCache interface {
	GetJSON(ctx context.Context, key string, out interface{}) (bool, error)
	SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

type redisMatchCache struct {
	client *redis.Client
}

type noopMatchCache struct{}

// NewMatchCache returns a Redis-backed cache, or a no-op one when no Redis
// address is configured.
func NewMatchCache(cfg config.RedisConfig) MatchCache {
	if cfg.Addr == "" {
		return noopMatchCache{}
	}
	return &redisMatchCache{
		client: redis.NewClient(&redis.Options{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		}),
	}
}

func (c *redisMatchCache) GetJSON(ctx context.Context, key string, out interface{}) (bool, error) {
	val, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read cache key %s: %w", key, err)
	}

	if err := json.Unmarshal([]byte(val), out); err != nil {
		return false, fmt.Errorf("failed to decode cache key %s: %w", key, err)
	}
	return true, nil
}

func (c *redisMatchCache) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode cache key %s: %w", key, err)
	}

	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to write cache key %s: %w", key, err)
	}
	return nil
}

func (noopMatchCache) GetJSON(ctx context.Context, key string, out interface{}) (bool, error) {
	return false, nil
}

func (noopMatchCache) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return nil
}
