package storage

import (
	"context"
	"errors"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/showroom/backend/internal/domain/labeling"
)

var _ labeling.ArtifactStore = (*StubArtifactStore)(nil)

// StubArtifactStore keeps artifacts in memory.
// Use it for development and tests where no storage backend is available.
type StubArtifactStore struct {
	// BaseURL prefixes every returned URL
	BaseURL string

	mu      sync.RWMutex
	objects map[string][]byte
	// FailDelete makes every Delete call fail
	FailDelete bool
}

// NewStubArtifactStore creates a new StubArtifactStore
func NewStubArtifactStore() *StubArtifactStore {
	return &StubArtifactStore{
		BaseURL: "https://storage.example.com",
		objects: make(map[string][]byte),
	}
}

// Save stores a copy of the PNG
func (s *StubArtifactStore) Save(_ context.Context, key string, png []byte) (string, error) {
	if key == "" {
		return "", errors.New("storage key is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = slices.Clone(png)
	return strings.TrimRight(s.BaseURL, "/") + "/" + key, nil
}

// Delete forgets the artifact behind the URL
func (s *StubArtifactStore) Delete(_ context.Context, rawURL string) error {
	if s.FailDelete {
		return errors.New("stub storage: delete disabled")
	}
	key, err := keyFromURL(strings.TrimRight(s.BaseURL, "/"), rawURL)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	return nil
}

// Get returns a stored artifact
func (s *StubArtifactStore) Get(key string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.objects[key]
	return data, ok
}

// Keys returns the stored keys in sorted order
func (s *StubArtifactStore) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Sorted(maps.Keys(s.objects))
}
