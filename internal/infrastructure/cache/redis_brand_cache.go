package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultBrandKeyPrefix = "showroom:brand-options:"

// RedisBrandCache implements BrandCache on Redis so several instances share
// one copy of the option maps. Values are stored as JSON objects.
type RedisBrandCache struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisBrandCache connects to addr and verifies the connection
func NewRedisBrandCache(ctx context.Context, addr, password string, db int) (*RedisBrandCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisBrandCacheWithClient(client, ""), nil
}

// NewRedisBrandCacheWithClient wraps an existing client
func NewRedisBrandCacheWithClient(client *redis.Client, keyPrefix string) *RedisBrandCache {
	if keyPrefix == "" {
		keyPrefix = defaultBrandKeyPrefix
	}
	return &RedisBrandCache{client: client, keyPrefix: keyPrefix}
}

// Get reads and decodes the cached options
func (c *RedisBrandCache) Get(ctx context.Context, key string) (map[string]string, bool, error) {
	raw, err := c.client.Get(ctx, c.keyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read brand options: %w", err)
	}

	var options map[string]string
	if err := json.Unmarshal(raw, &options); err != nil {
		return nil, false, fmt.Errorf("failed to decode brand options: %w", err)
	}
	return options, true, nil
}

// Set encodes options and stores them with ttl
func (c *RedisBrandCache) Set(ctx context.Context, key string, options map[string]string, ttl time.Duration) error {
	raw, err := json.Marshal(options)
	if err != nil {
		return fmt.Errorf("failed to encode brand options: %w", err)
	}
	if err := c.client.Set(ctx, c.keyPrefix+key, raw, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store brand options: %w", err)
	}
	return nil
}

// Close closes the Redis client
func (c *RedisBrandCache) Close() error {
	return c.client.Close()
}

var _ BrandCache = (*RedisBrandCache)(nil)
