package cache

import (
	"context"
	"maps"
	"sync"
	"time"
)

type brandEntry struct {
	options   map[string]string
	expiresAt time.Time
}

// InMemoryBrandCache implements BrandCache in process memory.
// Suitable for single-instance deployments and tests.
type InMemoryBrandCache struct {
	mu        sync.RWMutex
	entries   map[string]brandEntry
	now       func() time.Time
	stopChan  chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewInMemoryBrandCache creates the cache and starts its expiry sweeper
func NewInMemoryBrandCache() *InMemoryBrandCache {
	c := &InMemoryBrandCache{
		entries:  make(map[string]brandEntry),
		now:      time.Now,
		stopChan: make(chan struct{}),
	}
	c.wg.Add(1)
	go c.cleanupLoop(5 * time.Minute)
	return c
}

// Get returns a copy of the cached options
func (c *InMemoryBrandCache) Get(_ context.Context, key string) (map[string]string, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	if !ok || !c.now().Before(e.expiresAt) {
		return nil, false, nil
	}
	return maps.Clone(e.options), true, nil
}

// Set stores a copy of options
func (c *InMemoryBrandCache) Set(_ context.Context, key string, options map[string]string, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = brandEntry{
		options:   maps.Clone(options),
		expiresAt: c.now().Add(ttl),
	}
	return nil
}

// Close stops the sweeper. Safe to call multiple times.
func (c *InMemoryBrandCache) Close() error {
	c.closeOnce.Do(func() {
		close(c.stopChan)
		c.wg.Wait()
	})
	return nil
}

func (c *InMemoryBrandCache) cleanupLoop(interval time.Duration) {
	defer c.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopChan:
			return
		case <-ticker.C:
			c.cleanup()
		}
	}
}

func (c *InMemoryBrandCache) cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for k, e := range c.entries {
		if !now.Before(e.expiresAt) {
			delete(c.entries, k)
		}
	}
}

// Size returns the number of stored entries, expired ones included
func (c *InMemoryBrandCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

var _ BrandCache = (*InMemoryBrandCache)(nil)
