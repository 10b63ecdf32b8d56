package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/showroom/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewRedisBrandCache_Unreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := NewRedisBrandCache(ctx, "127.0.0.1:1", "", 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to connect to Redis")
}

func TestNewBrandCache(t *testing.T) {
	t.Run("in-memory when Redis is not configured", func(t *testing.T) {
		c := NewBrandCache(context.Background(), config.RedisConfig{}, nil)
		defer c.Close()
		assert.IsType(t, &InMemoryBrandCache{}, c)
	})

	t.Run("falls back with a warning when Redis is down", func(t *testing.T) {
		core, logs := observer.New(zap.WarnLevel)
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		c := NewBrandCache(ctx, config.RedisConfig{Host: "127.0.0.1", Port: 1}, zap.New(core))
		defer c.Close()

		assert.IsType(t, &InMemoryBrandCache{}, c)
		require.Equal(t, 1, logs.Len())
		assert.Contains(t, logs.All()[0].Message, "falling back")
	})
}

func TestRedisBrandCache_Container(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	endpoint, err := container.Endpoint(ctx, "")
	require.NoError(t, err)

	c, err := NewRedisBrandCache(ctx, endpoint, "", 0)
	require.NoError(t, err)
	defer c.Close()

	_, ok, err := c.Get(ctx, "brand")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "brand", map[string]string{"7": "Kartell"}, time.Minute))

	got, ok, err := c.Get(ctx, "brand")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, map[string]string{"7": "Kartell"}, got)

	ttl, err := c.client.TTL(ctx, defaultBrandKeyPrefix+"brand").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	// a foreign value under the key is reported, not silently ignored
	require.NoError(t, c.client.Set(ctx, defaultBrandKeyPrefix+"broken", "not json", time.Minute).Err())
	_, _, err = c.Get(ctx, "broken")
	require.Error(t, err)
	assert.NotErrorIs(t, err, redis.Nil)
}
