// Package cachemanager provides a typed cache over go-cache plus a
// read-through wrapper that builds missing values on demand.
package cachemanager

import (
	"context"
)

// CacheManager is a typed key/value cache. Entries live for the lifetime the
// cache was created with.
type CacheManager[K ~string, V any] interface {
	Get(ctx context.Context, key K) (V, bool)
	Set(ctx context.Context, key K, value V)
	Delete(ctx context.Context, keys ...K)
	Flush(ctx context.Context)
	Count() int
}

// Stats counts lookups since the cache was created or last flushed.
type Stats struct {
	Hits   uint64
	Misses uint64
	Loads  uint64 // successful builds of a missing value
	Errors uint64 // failed builds, never cached
}
