package storage

import (
	"context"
	"fmt"

	"github.com/showroom/backend/internal/domain/labeling"
	infraconfig "github.com/showroom/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// NewArtifactStore builds the store selected by cfg.Driver.
// The S3 bucket is created on demand.
func NewArtifactStore(ctx context.Context, cfg *infraconfig.StorageConfig, logger *zap.Logger) (labeling.ArtifactStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	switch cfg.Driver {
	case infraconfig.StorageDriverS3:
		store, err := NewS3ArtifactStore(cfg, WithLogger(logger))
		if err != nil {
			return nil, err
		}
		if err := store.EnsureBucket(ctx); err != nil {
			return nil, err
		}
		return store, nil
	case infraconfig.StorageDriverLocal:
		return NewLocalArtifactStore(cfg.LocalPath, cfg.LocalBaseURL, logger)
	case infraconfig.StorageDriverStub:
		logger.Warn("Using in-memory label storage; artifacts are lost on restart")
		return NewStubArtifactStore(), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
