package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/showroom/backend/internal/domain/labeling"
	"go.uber.org/zap"
)

var _ labeling.ArtifactStore = (*LocalArtifactStore)(nil)

// LocalArtifactStore writes labels below a directory that the HTTP server
// exposes under BaseURL.
type LocalArtifactStore struct {
	basePath string
	baseURL  string
	logger   *zap.Logger
}

// NewLocalArtifactStore creates the base directory if needed
func NewLocalArtifactStore(basePath, baseURL string, logger *zap.Logger) (*LocalArtifactStore, error) {
	if basePath == "" {
		return nil, errors.New("storage base path is required")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LocalArtifactStore{
		basePath: basePath,
		baseURL:  strings.TrimRight(baseURL, "/"),
		logger:   logger,
	}, nil
}

// BasePath returns the directory artifacts are written to
func (s *LocalArtifactStore) BasePath() string {
	return s.basePath
}

// Save writes the PNG at {base}/{key}
func (s *LocalArtifactStore) Save(ctx context.Context, key string, png []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	fullPath, err := s.resolve(key)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(fullPath, png, 0o644); err != nil {
		return "", fmt.Errorf("failed to write label file: %w", err)
	}

	url := s.baseURL + "/" + filepath.ToSlash(filepath.Clean(key))
	s.logger.Debug("Label stored", zap.String("path", fullPath), zap.Int("size", len(png)))
	return url, nil
}

// Delete removes the file behind a URL returned by Save. Missing files are not an error.
func (s *LocalArtifactStore) Delete(ctx context.Context, rawURL string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	key, err := keyFromURL(s.baseURL, rawURL)
	if err != nil {
		return err
	}
	fullPath, err := s.resolve(key)
	if err != nil {
		return err
	}
	if err := os.Remove(fullPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete label file: %w", err)
	}
	return nil
}

// resolve maps a key to a path under basePath, rejecting traversal
func (s *LocalArtifactStore) resolve(key string) (string, error) {
	if key == "" {
		return "", errors.New("storage key is required")
	}
	cleanPath := filepath.Clean(key)
	if filepath.IsAbs(cleanPath) || containsDotDot(key) {
		s.logger.Warn("blocked potentially malicious path", zap.String("key", key))
		return "", fmt.Errorf("invalid storage key %q", key)
	}

	fullPath := filepath.Join(s.basePath, cleanPath)
	absBase, err := filepath.Abs(s.basePath)
	if err != nil {
		return "", fmt.Errorf("failed to resolve base path: %w", err)
	}
	absPath, err := filepath.Abs(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to resolve file path: %w", err)
	}
	if !strings.HasPrefix(absPath, absBase+string(filepath.Separator)) {
		return "", fmt.Errorf("invalid storage key %q", key)
	}
	return fullPath, nil
}

// containsDotDot checks the raw key for ".." components before normalization
func containsDotDot(path string) bool {
	parts := strings.FieldsFunc(path, func(r rune) bool {
		return r == '/' || r == filepath.Separator
	})
	return slices.Contains(parts, "..")
}
