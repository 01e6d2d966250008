package texture

import (
	"context"
	"image"
	"sync"
)

// Cache is a concurrency-safe memoizing Loader. Failed loads are remembered
// too, so a broken reference is not retried on every rebuild.
type Cache struct {
	mu     sync.RWMutex
	items  map[string]*cacheEntry
	loader Loader
}

type cacheEntry struct {
	img *image.NRGBA
	err error
}

// NewCache wraps loader with a cache.
func NewCache(loader Loader) *Cache {
	return &Cache{
		items:  make(map[string]*cacheEntry),
		loader: loader,
	}
}

// Load returns the cached result for ref, loading it on first use.
// Context cancellations are not cached.
func (c *Cache) Load(ctx context.Context, ref string) (*image.NRGBA, error) {
	// Fast path: read lock
	c.mu.RLock()
	if entry, exists := c.items[ref]; exists {
		c.mu.RUnlock()
		return entry.img, entry.err
	}
	c.mu.RUnlock()

	img, err := c.loader.Load(ctx, ref)
	if err != nil && ctx.Err() != nil {
		return nil, err
	}

	// Write lock with double-check
	c.mu.Lock()
	defer c.mu.Unlock()
	if entry, exists := c.items[ref]; exists {
		return entry.img, entry.err
	}
	c.items[ref] = &cacheEntry{img: img, err: err}
	return img, err
}

// Len returns the number of cached references, including failures.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
