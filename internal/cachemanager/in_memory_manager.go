package cachemanager

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/zjrosen/bulletdash/internal/log"
)

// DefaultCleanupInterval is how often expired entries are swept.
const DefaultCleanupInterval = 30 * time.Minute

// NoExpiration keeps an entry until it is deleted or flushed.
const NoExpiration = gocache.NoExpiration

// InMemoryCacheManager implements CacheManager on go-cache.
type InMemoryCacheManager[K ~string, V any] struct {
	useCase string
	ttl     time.Duration
	cache   *gocache.Cache
}

// NewInMemoryCacheManager creates a cache whose entries expire after ttl, or
// never with NoExpiration. useCase labels log lines.
func NewInMemoryCacheManager[K ~string, V any](useCase string, ttl time.Duration) *InMemoryCacheManager[K, V] {
	cleanup := DefaultCleanupInterval
	if ttl == NoExpiration {
		cleanup = 0
	}
	return &InMemoryCacheManager[K, V]{
		useCase: useCase,
		ttl:     ttl,
		cache:   gocache.New(ttl, cleanup),
	}
}

// Get retrieves an item by key.
func (c *InMemoryCacheManager[K, V]) Get(_ context.Context, key K) (V, bool) {
	var zero V
	value, found := c.cache.Get(string(key))
	if !found {
		return zero, false
	}
	v, ok := value.(V)
	if !ok {
		log.Error(log.CatCache, "wrong type assertion when getting value", "cache", c.useCase, "key", key)
		return zero, false
	}
	return v, true
}

// Set stores value under key with the cache's lifetime.
func (c *InMemoryCacheManager[K, V]) Set(_ context.Context, key K, value V) {
	c.cache.Set(string(key), value, c.ttl)
}

// Delete removes keys.
func (c *InMemoryCacheManager[K, V]) Delete(_ context.Context, keys ...K) {
	for _, key := range keys {
		c.cache.Delete(string(key))
	}
}

// Flush removes everything.
func (c *InMemoryCacheManager[K, V]) Flush(context.Context) {
	n := c.cache.ItemCount()
	c.cache.Flush()
	log.Debug(log.CatCache, "flushed", "cache", c.useCase, "entries", n)
}

// Count returns the number of entries, including expired ones not yet
// swept.
func (c *InMemoryCacheManager[K, V]) Count() int {
	return c.cache.ItemCount()
}
