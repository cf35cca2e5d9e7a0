package cachemanager

import (
	"context"
	"sync/atomic"
)

// Loader builds the value for a missing key from input.
type Loader[V any, I any] func(ctx context.Context, input I) (V, error)

// ReadThroughCache builds missing values with a loader and keeps them.
// Concurrent misses on the same key may both load; the last write wins,
// which is harmless for values that are pure functions of their input.
type ReadThroughCache[K ~string, V any, I any] struct {
	cache CacheManager[K, V]
	load  Loader[V, I]

	hits, misses, loads, errors atomic.Uint64
}

// NewReadThroughCache wraps cache with load.
func NewReadThroughCache[K ~string, V any, I any](cache CacheManager[K, V], load Loader[V, I]) *ReadThroughCache[K, V, I] {
	return &ReadThroughCache[K, V, I]{cache: cache, load: load}
}

// Get returns the cached value for key, building it from input on a miss.
// Failed builds are returned but not cached.
func (r *ReadThroughCache[K, V, I]) Get(ctx context.Context, key K, input I) (V, error) {
	if value, ok := r.cache.Get(ctx, key); ok {
		r.hits.Add(1)
		return value, nil
	}
	r.misses.Add(1)
	value, err := r.load(ctx, input)
	if err != nil {
		r.errors.Add(1)
		return value, err
	}
	r.loads.Add(1)
	r.cache.Set(ctx, key, value)
	return value, nil
}

// Flush drops every cached value and resets the counters.
func (r *ReadThroughCache[K, V, I]) Flush(ctx context.Context) {
	r.cache.Flush(ctx)
	r.hits.Store(0)
	r.misses.Store(0)
	r.loads.Store(0)
	r.errors.Store(0)
}

// Stats reports lookups since creation or the last Flush.
func (r *ReadThroughCache[K, V, I]) Stats() Stats {
	return Stats{
		Hits:   r.hits.Load(),
		Misses: r.misses.Load(),
		Loads:  r.loads.Load(),
		Errors: r.errors.Load(),
	}
}

// Len returns the number of cached values.
func (r *ReadThroughCache[K, V, I]) Len() int {
	return r.cache.Count()
}
