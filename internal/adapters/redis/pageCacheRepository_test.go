package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCache(t *testing.T, ttl time.Duration) (*PageCacheRedis, *miniredis.Miniredis) {
	t.Helper()
	s := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: s.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewPageCacheRedis(client, ttl), s
}

func TestPageCacheGetSet(t *testing.T) {
	cache, _ := newCache(t, 20*time.Second)
	ctx := context.Background()

	_, ok, err := cache.Get(ctx, "index:1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, cache.Set(ctx, "index:1", []byte(`{"page":1}`)))

	body, ok, err := cache.Get(ctx, "index:1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"page":1}`, string(body))
}

func TestPageCacheExpires(t *testing.T) {
	cache, s := newCache(t, 20*time.Second)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "index:1", []byte("x")))
	assert.Equal(t, 20*time.Second, s.TTL("page:index:1"))

	s.FastForward(21 * time.Second)

	_, ok, err := cache.Get(ctx, "index:1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPageCacheClear(t *testing.T) {
	cache, s := newCache(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "index:1", []byte("a")))
	require.NoError(t, cache.Set(ctx, "index:2", []byte("b")))
	require.NoError(t, s.Set("unrelated", "keep"))

	require.NoError(t, cache.Clear(ctx))

	_, ok, err := cache.Get(ctx, "index:1")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.True(t, s.Exists("unrelated"))

	// nothing left to clear
	assert.NoError(t, cache.Clear(ctx))
}

func TestPageCacheReportsConnectionErrors(t *testing.T) {
	cache, s := newCache(t, time.Minute)
	s.Close()

	_, _, err := cache.Get(context.Background(), "index:1")
	assert.Error(t, err)
}
