// Package cache stores derived artifacts (compiled graphs, rendered
// diagrams) keyed by a hash of their inputs.
//
// # Backends
//
//   - [NullCache]: stores nothing; caching disabled
//   - [FileCache]: one JSON file per entry under a directory (CLI default)
//   - [MemoryCache]: bounded in-process LRU (server default)
//   - [RedisCache]: shared Redis instance
//
// Use [Open] to select a backend by name from configuration.
//
// # Keys
//
// A [Keyer] derives keys from the document fingerprint and the options that
// affect the output, so any change to either produces a new key. Entries are
// never invalidated explicitly; stale ones expire by TTL or eviction.
package cache

import (
	"context"
	"fmt"
	"time"
)

// Cache is a byte-oriented key-value store with per-entry expiry.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the stored value and true, or false on a miss.
	// Expired entries are misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases resources held by the cache.
	Close() error
}

// Backend names accepted by [Open].
const (
	BackendNone   = "none"
	BackendFile   = "file"
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// Options selects and configures a backend for [Open].
type Options struct {
	Backend  string
	Dir      string // FileCache directory
	Size     int    // MemoryCache capacity
	RedisURL string // RedisCache connection URL
}

// Open creates the cache backend named by opts.Backend.
// An empty backend name selects [NullCache].
func Open(ctx context.Context, opts Options) (Cache, error) {
	switch opts.Backend {
	case "", BackendNone:
		return NewNullCache(), nil
	case BackendFile:
		return NewFileCache(opts.Dir)
	case BackendMemory:
		return NewMemoryCache(opts.Size)
	case BackendRedis:
		return NewRedisCache(ctx, opts.RedisURL)
	default:
		return nil, fmt.Errorf("unknown cache backend %q", opts.Backend)
	}
}
