package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/flexmark/pkg/cache"
	"github.com/aretw0/flexmark/pkg/cache/cachetest"
	"github.com/aretw0/flexmark/pkg/cache/redis"
)

func setup(t *testing.T) (*miniredis.Miniredis, *backend.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisCache_Contract(t *testing.T) {
	_, client := setup(t)
	cachetest.RunContract(t, redis.NewFromClient(client))
}

func TestRedisCache_PrefixAndTTL(t *testing.T) {
	mr, client := setup(t)
	ctx := context.Background()

	c := redis.NewFromClient(client, redis.WithPrefix("test:"), redis.WithTTL(time.Minute))
	require.NoError(t, c.Set(ctx, "k", "v"))

	assert.True(t, mr.Exists("test:k"))
	assert.Equal(t, time.Minute, mr.TTL("test:k"))

	mr.FastForward(2 * time.Minute)
	_, err := c.Get(ctx, "k")
	assert.ErrorIs(t, err, cache.ErrCacheMiss)
}

func TestRedisCache_FromURL(t *testing.T) {
	mr, _ := setup(t)

	c, err := redis.NewFromURL("redis://" + mr.Addr() + "/0")
	require.NoError(t, err)
	defer c.Close()

	require.NoError(t, c.Ping(context.Background()))

	_, err = redis.NewFromURL("::not a url")
	assert.Error(t, err)
}

func TestRedisCache_ConnectionError(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	client := backend.NewClient(&backend.Options{Addr: mr.Addr(), MaxRetries: -1})
	defer client.Close()

	c := redis.NewFromClient(client)
	mr.Close()

	_, err = c.Get(context.Background(), "k")
	require.Error(t, err)
	assert.NotErrorIs(t, err, cache.ErrCacheMiss)
}
