package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisCache stores JSON encoded responses. Invalidate bumps a generation counter, so every
// key written before it becomes unreachable and expires on its own TTL.
type RedisCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	logger *zap.Logger
}

func Connect(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return client, nil
}

func NewRedisCache(client *redis.Client, prefix string, ttl time.Duration, logger *zap.Logger) *RedisCache {
	return &RedisCache{
		client: client,
		prefix: prefix,
		ttl:    ttl,
		logger: logger,
	}
}

func (c *RedisCache) generationKey() string {
	return c.prefix + ":generation"
}

// Scope resolves key against the current generation. Callers pass the scoped key to both Get
// and Set, so a value loaded before an Invalidate is stored under the old generation and is
// never served. ok is false when the generation cannot be read.
func (c *RedisCache) Scope(ctx context.Context, key string) (string, bool) {
	generation, err := c.client.Get(ctx, c.generationKey()).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		c.logger.Warn("Cache lookup failed", zap.String("key", key), zap.Error(err))
		return "", false
	}

	return fmt.Sprintf("%s:%d:%s", c.prefix, generation, key), true
}

// Get decodes a cached value into dest and reports whether it was found.
// Redis errors count as a miss.
func (c *RedisCache) Get(ctx context.Context, scopedKey string, dest any) bool {
	raw, err := c.client.Get(ctx, scopedKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("Cache lookup failed", zap.String("key", scopedKey), zap.Error(err))
		}
		return false
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		c.logger.Warn("Cached value is corrupted", zap.String("key", scopedKey), zap.Error(err))
		return false
	}

	return true
}

func (c *RedisCache) Set(ctx context.Context, scopedKey string, value any) {
	raw, err := json.Marshal(value)
	if err != nil {
		c.logger.Warn("Unable to encode cache value", zap.String("key", scopedKey), zap.Error(err))
		return
	}

	if err := c.client.Set(ctx, scopedKey, raw, c.ttl).Err(); err != nil {
		c.logger.Warn("Cache write failed", zap.String("key", scopedKey), zap.Error(err))
	}
}

func (c *RedisCache) Invalidate(ctx context.Context) {
	if err := c.client.Incr(ctx, c.generationKey()).Err(); err != nil {
		c.logger.Error("Cache invalidation failed", zap.Error(err))
	}
}

// Noop is used when no REDIS_URL is configured.
type Noop struct{}

func (Noop) Scope(context.Context, string) (string, bool) { return "", false }
func (Noop) Get(context.Context, string, any) bool        { return false }
func (Noop) Set(context.Context, string, any)             {}
func (Noop) Invalidate(context.Context)                   {}
