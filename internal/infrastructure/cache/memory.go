package cache

import (
	"context"
	"sync"
	"time"

	"github.com/layoutforge/backend/internal/domain"
)

// cacheItem is a single stored analysis with its expiration.
type cacheItem struct {
	Analysis domain.ImageAnalysis
	Expires  time.Time
}

// MemoryCache is a thread-safe in-memory analysis cache with TTL
// support. Entries are stored and returned by value so callers can
// never mutate a cached analysis.
type MemoryCache struct {
	data  map[string]cacheItem
	mutex sync.RWMutex
}

// NewMemoryCache creates an in-memory cache and starts its cleanup
// goroutine, which sweeps expired entries every 10 minutes.
func NewMemoryCache() *MemoryCache {
	c := &MemoryCache{
		data: make(map[string]cacheItem),
	}
	go c.cleanupExpired()
	return c
}

// Get retrieves an analysis from the cache.
func (c *MemoryCache) Get(ctx context.Context, key string) (*domain.ImageAnalysis, error) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	item, exists := c.data[key]
	if !exists || time.Now().After(item.Expires) {
		return nil, domain.ErrCacheMiss
	}

	analysis := item.Analysis
	return &analysis, nil
}

// Set stores an analysis with a TTL.
func (c *MemoryCache) Set(ctx context.Context, key string, analysis *domain.ImageAnalysis, ttl time.Duration) error {
	if analysis == nil {
		return domain.ErrInvalidRequest
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.data[key] = cacheItem{
		Analysis: *analysis,
		Expires:  time.Now().Add(ttl),
	}
	return nil
}

// Delete removes an entry from the cache.
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	delete(c.data, key)
	return nil
}

// Exists reports whether a key is present and not expired.
func (c *MemoryCache) Exists(ctx context.Context, key string) (bool, error) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	item, exists := c.data[key]
	if !exists || time.Now().After(item.Expires) {
		return false, nil
	}
	return true, nil
}

// cleanupExpired removes expired entries periodically.
func (c *MemoryCache) cleanupExpired() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		c.mutex.Lock()
		now := time.Now()
		for key, item := range c.data {
			if now.After(item.Expires) {
				delete(c.data, key)
			}
		}
		c.mutex.Unlock()
	}
}

// Size returns the current number of entries (for monitoring).
func (c *MemoryCache) Size() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return len(c.data)
}

// Clear removes all entries.
func (c *MemoryCache) Clear() {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.data = make(map[string]cacheItem)
}
