package scrape

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Cache stores fetched weekly payloads so repeated queries within a week
// don't re-hit the sources.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
}

// CacheKey derives a stable key for one source URL and ISO week window.
func CacheKey(sourceURL string, weekStart time.Time) string {
	h := sha256.Sum256(fmt.Appendf(nil, "%s|%s", sourceURL, weekStart.Format("2006-01-02")))
	return "rhlunch:v1:" + hex.EncodeToString(h[:])
}

// MemoryCache is the fast in-process tier.
type MemoryCache struct {
	cache *gocache.Cache
}

// NewMemoryCache creates a memory cache with the given default TTL.
func NewMemoryCache(defaultTTL, cleanupInterval time.Duration) *MemoryCache {
	return &MemoryCache{cache: gocache.New(defaultTTL, cleanupInterval)}
}

func (c *MemoryCache) Get(key string) ([]byte, bool) {
	if v, found := c.cache.Get(key); found {
		return v.([]byte), true
	}
	return nil, false
}

func (c *MemoryCache) Set(key string, value []byte, ttl time.Duration) error {
	c.cache.Set(key, value, ttl)
	return nil
}

// LayeredCache queries tiers in order and promotes hits to faster tiers,
// so a server restart warms from the persistent store.
type LayeredCache struct {
	tiers []Cache
}

// NewLayeredCache layers caches fastest-first.
func NewLayeredCache(tiers ...Cache) *LayeredCache {
	return &LayeredCache{tiers: tiers}
}

func (c *LayeredCache) Get(key string) ([]byte, bool) {
	for i, tier := range c.tiers {
		if v, ok := tier.Get(key); ok {
			for j := 0; j < i; j++ {
				_ = c.tiers[j].Set(key, v, 0)
			}
			return v, true
		}
	}
	return nil, false
}

func (c *LayeredCache) Set(key string, value []byte, ttl time.Duration) error {
	var firstErr error
	for _, tier := range c.tiers {
		if err := tier.Set(key, value, ttl); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
