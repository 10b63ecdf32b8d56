package cache

import (
	"context"

	"github.com/showroom/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// NewBrandCache returns a Redis cache when Redis is configured and reachable,
// otherwise an in-memory one. An unreachable Redis is logged, not fatal.
func NewBrandCache(ctx context.Context, cfg config.RedisConfig, logger *zap.Logger) BrandCache {
	if logger == nil {
		logger = zap.NewNop()
	}

	addr := cfg.Addr()
	if addr == "" {
		logger.Info("Redis not configured, using in-memory brand cache")
		return NewInMemoryBrandCache()
	}

	c, err := NewRedisBrandCache(ctx, addr, cfg.Password, cfg.DB)
	if err != nil {
		logger.Warn("Redis unavailable, falling back to in-memory brand cache",
			zap.String("addr", addr),
			zap.Error(err),
		)
		return NewInMemoryBrandCache()
	}

	logger.Info("Using Redis brand cache", zap.String("addr", addr))
	return c
}
