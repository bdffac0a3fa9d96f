package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func unreachableClient() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
}

func newTestCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisCache(client, "test", time.Minute, zap.NewNop()), server
}

func TestRedisCacheRoundTrip(t *testing.T) {
	c, server := newTestCache(t)
	ctx := context.Background()

	key, ok := c.Scope(ctx, "overall-stock:SSB")
	require.True(t, ok)
	assert.Equal(t, "test:0:overall-stock:SSB", key)

	var dest []string
	assert.False(t, c.Get(ctx, key, &dest))

	c.Set(ctx, key, []string{"diesel"})
	require.True(t, c.Get(ctx, key, &dest))
	assert.Equal(t, []string{"diesel"}, dest)
	assert.Equal(t, time.Minute, server.TTL(key))
}

func TestRedisCacheDropsValueLoadedBeforeInvalidate(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	// A reader misses, a write commits and invalidates, then the reader stores what it loaded.
	key, ok := c.Scope(ctx, "overall-stock:")
	require.True(t, ok)
	var dest string
	require.False(t, c.Get(ctx, key, &dest))

	c.Invalidate(ctx)
	c.Set(ctx, key, "stale")

	next, ok := c.Scope(ctx, "overall-stock:")
	require.True(t, ok)
	assert.NotEqual(t, key, next)
	assert.False(t, c.Get(ctx, next, &dest))
	assert.Empty(t, dest)
}

func TestRedisCacheIgnoresCorruptedValue(t *testing.T) {
	c, server := newTestCache(t)
	ctx := context.Background()

	key, _ := c.Scope(ctx, "overall-stock:")
	require.NoError(t, server.Set(key, "{not json"))

	var dest []string
	assert.False(t, c.Get(ctx, key, &dest))
}

func TestRedisCacheTreatsErrorsAsMiss(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	client := unreachableClient()
	defer client.Close()

	c := NewRedisCache(client, "test", time.Minute, zap.New(core))
	ctx := context.Background()

	_, ok := c.Scope(ctx, "overall-stock")
	assert.False(t, ok)

	var dest []string
	assert.False(t, c.Get(ctx, "test:0:overall-stock", &dest))
	assert.Nil(t, dest)

	c.Set(ctx, "test:0:overall-stock", []string{"a"})
	c.Invalidate(ctx)

	assert.Equal(t, 2, logs.FilterMessage("Cache lookup failed").Len())
	assert.Equal(t, 1, logs.FilterMessage("Cache write failed").Len())
	assert.Equal(t, 1, logs.FilterMessage("Cache invalidation failed").Len())
}

func TestConnectRejectsInvalidURL(t *testing.T) {
	_, err := Connect(context.Background(), "not a url")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid REDIS_URL")
}

func TestNoopNeverHits(t *testing.T) {
	var n Noop
	ctx := context.Background()
	_, ok := n.Scope(ctx, "k")
	assert.False(t, ok)
	n.Set(ctx, "k", 1)
	n.Invalidate(ctx)

	var v int
	assert.False(t, n.Get(ctx, "k", &v))
}
