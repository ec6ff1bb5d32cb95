// Package cache provides byte-oriented cache backends.
//
// Two consumers share these backends:
//   - the card source client, which caches per-card detail responses
//     so a cold catalog fill does not refetch every card
//   - the catalog snapshot seed, which persists the last good catalog so
//     a restarted process can serve it before the first live fetch ends
//
// Backends:
//   - [FileCache]: one JSON file per key under a directory (CLI, single host)
//   - [RedisCache]: shared cache for multi-instance deployments
//   - [NullCache]: stores nothing; used when caching is disabled
//
// Use [WithPrefix] to give each consumer its own key space.
package cache

import (
	"context"
	"time"
)

// Cache is a key/value store of opaque bytes with per-entry TTL.
type Cache interface {
	// Get returns the entry for key. A miss or an expired entry is
	// reported as (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of 0 means the entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Clear removes every entry owned by this cache and returns how many
	// were removed.
	Clear(ctx context.Context) (int, error)

	// Close releases backend resources.
	Close() error
}
