// Package cache provides byte-level caching for expensive geometry results.
//
// Insetting a parcel polygon and rasterizing it onto the construction grid
// are recomputed on every editor interaction; their inputs (polygon, grid
// parameters) rarely change between edits. Callers memoize those results
// through an explicit Cache instance keyed by content hashes — there is no
// implicit or global memoization anywhere in the engine.
//
// Three backends are provided: FileCache for CLI usage, RedisCache for the
// multi-instance server deployment, and NullCache to disable caching.
package cache

import (
	"context"
	"time"
)

// Default time-to-live per result kind. Geometry results are pure functions
// of their inputs, so long TTLs are safe; they exist only to bound cache
// growth on disk and in Redis.
const (
	// TTLInset is the time-to-live for inset polygon results.
	TTLInset = 7 * 24 * time.Hour

	// TTLGrid is the time-to-live for rasterized cell sets.
	TTLGrid = 7 * 24 * time.Hour

	// TTLEval is the time-to-live for full evaluation results.
	TTLEval = 24 * time.Hour
)

// Cache is the interface for cache storage backends.
type Cache interface {
	// Get retrieves a value. The second return reports a hit; a miss is not
	// an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with a time-to-live. A ttl of 0 means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// NullCache is a no-op cache that never stores anything.
// Useful for testing or when caching should be disabled.
type NullCache struct{}

// NewNullCache creates a null cache.
func NewNullCache() Cache {
	return &NullCache{}
}

// Get always returns a cache miss.
func (c *NullCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return nil, false, nil
}

// Set does nothing.
func (c *NullCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return nil
}

// Delete does nothing.
func (c *NullCache) Delete(ctx context.Context, key string) error {
	return nil
}

// Close does nothing.
func (c *NullCache) Close() error {
	return nil
}

// Ensure NullCache implements Cache.
var _ Cache = (*NullCache)(nil)
