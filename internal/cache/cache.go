package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

const (
	// ExpiryCatalog bounds how stale a cached catalog read may be.
	ExpiryCatalog = 5 * time.Minute

	cleanupInterval = 10 * time.Minute
)

// Cache is the read-through cache used for catalog lookups.
type Cache interface {
	Get(ctx context.Context, key string) (interface{}, bool)
	Set(ctx context.Context, key string, value interface{}, expiry time.Duration)
	Delete(ctx context.Context, key string)
}

// InMemoryCache implements Cache with an in-process TTL store.
type InMemoryCache struct {
	store *gocache.Cache
}

// NewInMemoryCache creates a new in-memory cache.
func NewInMemoryCache() *InMemoryCache {
	return &InMemoryCache{
		store: gocache.New(ExpiryCatalog, cleanupInterval),
	}
}

func (c *InMemoryCache) Get(_ context.Context, key string) (interface{}, bool) {
	return c.store.Get(key)
}

func (c *InMemoryCache) Set(_ context.Context, key string, value interface{}, expiry time.Duration) {
	c.store.Set(key, value, expiry)
}

func (c *InMemoryCache) Delete(_ context.Context, key string) {
	c.store.Delete(key)
}

// GetTyped attempts to convert a cache value to the requested type.
func GetTyped[T any](value interface{}) (*T, bool) {
	if value == nil {
		return nil, false
	}
	if typed, ok := value.(*T); ok {
		return typed, true
	}
	return nil, false
}
