package sessions

import (
	"context"
	"testing"
	"time"

	mr "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newRedisCache(t *testing.T) (*RedisCache, *mr.Miniredis) {
	t.Helper()
	m, err := mr.Run()
	require.NoError(t, err)
	t.Cleanup(m.Close)
	client := redis.NewClient(&redis.Options{Addr: m.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisCache(client), m
}

func TestRedisCache_SaveGetDelete(t *testing.T) {
	c, m := newRedisCache(t)
	ctx := context.Background()

	require.NoError(t, c.Save(ctx, "user-1", "digest-1", 7*24*time.Hour))

	got, ok, err := c.Get(ctx, "user-1")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "digest-1", got)

	// stored under refresh:<id> with the full week TTL
	require.True(t, m.Exists("refresh:user-1"))
	require.Equal(t, 604800*time.Second, m.TTL("refresh:user-1"))

	require.NoError(t, c.Delete(ctx, "user-1"))
	_, ok, err = c.Get(ctx, "user-1")
	require.NoError(t, err)
	require.False(t, ok)

	// deleting again is not an error
	require.NoError(t, c.Delete(ctx, "user-1"))
}

func TestRedisCache_SaveOverwrites(t *testing.T) {
	c, _ := newRedisCache(t)
	ctx := context.Background()

	require.NoError(t, c.Save(ctx, "user-2", "first", time.Hour))
	require.NoError(t, c.Save(ctx, "user-2", "second", time.Hour))

	got, ok, err := c.Get(ctx, "user-2")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "second", got)
}

func TestRedisCache_TTLExpiry(t *testing.T) {
	c, m := newRedisCache(t)
	ctx := context.Background()

	require.NoError(t, c.Save(ctx, "user-3", "digest", time.Second))
	_, ok, err := c.Get(ctx, "user-3")
	require.NoError(t, err)
	require.True(t, ok)

	m.FastForward(2 * time.Second)

	_, ok, err = c.Get(ctx, "user-3")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestRedisCache_PingAndFailure(t *testing.T) {
	c, m := newRedisCache(t)
	ctx := context.Background()
	require.NoError(t, c.Ping(ctx))

	m.Close()
	require.Error(t, c.Ping(ctx))
	_, _, err := c.Get(ctx, "user-4")
	require.Error(t, err)
}
