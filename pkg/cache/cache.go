// Package cache stores HTTP responses between runs.
//
// Four backends implement [Cache]:
//   - [FileCache]: JSON entries under a directory, the CLI default
//   - [MemoryCache]: a bounded in-process LRU
//   - [RedisCache]: a shared Redis instance
//   - [NullCache]: caching disabled
//
// [Open] builds one from a [Config], and wraps it so cache hits, misses and
// writes reach the observability hooks:
//
//	c, err := cache.Open(ctx, cache.Config{Backend: cache.BackendFile, Dir: dir})
//	if err != nil {
//	    return err
//	}
//	defer c.Close()
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/matzehuels/writeme/pkg/observability"
)

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the cached value. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the backend.
	Close() error
}

// Clearer is implemented by backends that can drop every entry they own.
type Clearer interface {
	// Clear removes all entries and reports how many were removed.
	Clear(ctx context.Context) (int, error)
}

// Backend names a cache implementation.
type Backend string

const (
	BackendFile   Backend = "file"
	BackendMemory Backend = "memory"
	BackendRedis  Backend = "redis"
	BackendNone   Backend = "none"
)

// Backends lists the accepted backend names.
var Backends = []Backend{BackendFile, BackendMemory, BackendRedis, BackendNone}

// Config selects and configures a backend.
type Config struct {
	Backend Backend

	// Dir is the FileCache directory.
	Dir string

	// Size is the MemoryCache capacity in entries. Zero means DefaultMemorySize.
	Size int

	// Redis holds the RedisCache connection settings.
	Redis RedisConfig
}

// Open returns the configured backend wrapped with observability hooks.
// An empty Backend selects BackendFile.
func Open(ctx context.Context, cfg Config) (Cache, error) {
	var (
		c   Cache
		err error
	)
	switch cfg.Backend {
	case BackendFile, "":
		c, err = NewFileCache(cfg.Dir)
	case BackendMemory:
		c, err = NewMemoryCache(cfg.Size)
	case BackendRedis:
		c, err = NewRedisCache(ctx, cfg.Redis)
	case BackendNone:
		c = NewNullCache()
	default:
		return nil, fmt.Errorf("unknown cache backend %q (want one of %v)", cfg.Backend, Backends)
	}
	if err != nil {
		return nil, err
	}
	name := cfg.Backend
	if name == "" {
		name = BackendFile
	}
	return Instrument(c, string(name)), nil
}

// Instrument reports every Get and Set on c to the cache hooks under the
// given backend name.
func Instrument(c Cache, backend string) Cache {
	return &instrumented{Cache: c, backend: backend}
}

type instrumented struct {
	Cache
	backend string
}

func (i *instrumented) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, ok, err := i.Cache.Get(ctx, key)
	if err == nil {
		if ok {
			observability.Cache().OnCacheHit(ctx, i.backend)
		} else {
			observability.Cache().OnCacheMiss(ctx, i.backend)
		}
	}
	return data, ok, err
}

func (i *instrumented) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	err := i.Cache.Set(ctx, key, data, ttl)
	if err == nil {
		observability.Cache().OnCacheSet(ctx, i.backend, len(data))
	}
	return err
}

// Clear forwards to the wrapped backend when it supports clearing.
func (i *instrumented) Clear(ctx context.Context) (int, error) {
	if c, ok := i.Cache.(Clearer); ok {
		return c.Clear(ctx)
	}
	return 0, nil
}
