package storage

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"servicemap/internal/models"
)

func newRedisSource(t *testing.T) (*RedisSource, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisSource(client, "servicemap:services"), mr
}

func TestRedisSource_PublishThenFetch(t *testing.T) {
	src, _ := newRedisSource(t)
	ctx := context.Background()

	require.NoError(t, src.Publish(ctx, models.FallbackServices()))

	got, err := src.Fetch(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.FallbackServices(), got)
	assert.Equal(t, "redis:servicemap:services", src.Name())
}

func TestRedisSource_MissingKey(t *testing.T) {
	src, _ := newRedisSource(t)

	_, err := src.Fetch(context.Background())
	assert.ErrorContains(t, err, "not found")
}

func TestRedisSource_Malformed(t *testing.T) {
	src, mr := newRedisSource(t)
	require.NoError(t, mr.Set("servicemap:services", `{"oops": true}`))

	_, err := src.Fetch(context.Background())
	assert.Error(t, err)
}
