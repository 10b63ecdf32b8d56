// Package cache holds the key/value caches used by the e-commerce adapters.
package cache

import (
	"context"
	"time"
)

// BrandCache stores attribute option maps (option id -> label) fetched from
// the e-commerce platform so every lookup does not refetch them.
type BrandCache interface {
	// Get returns the cached map. ok is false on a miss or after expiry.
	Get(ctx context.Context, key string) (options map[string]string, ok bool, err error)
	// Set stores options for ttl
	Set(ctx context.Context, key string, options map[string]string, ttl time.Duration) error
	Close() error
}
