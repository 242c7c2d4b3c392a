package cache

import (
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"career-service/internal/observability"
)

// Store is a cache-aside key-value cache with tag invalidation. Staleness
// is bounded by the entry TTL; there is no write-through guarantee, so
// mutating handlers must invalidate the relevant tags before responding.
type Store interface {
	Get(key string) (any, bool)
	Set(key string, value any, ttl time.Duration, tags ...string)
	Invalidate(tags ...string)
}

// TagCache wraps an expiring in-memory cache with a tag index.
type TagCache struct {
	entries *gocache.Cache

	mu        sync.Mutex
	keysByTag map[string]map[string]struct{}
}

// New builds a TagCache. defaultTTL applies when Set is called with a
// non-positive ttl.
func New(defaultTTL time.Duration) *TagCache {
	return &TagCache{
		entries:   gocache.New(defaultTTL, 2*defaultTTL),
		keysByTag: make(map[string]map[string]struct{}),
	}
}

// Get returns the cached value for key, if present and unexpired.
func (c *TagCache) Get(key string) (any, bool) {
	val, ok := c.entries.Get(key)
	if ok {
		observability.IncCacheHit()
	} else {
		observability.IncCacheMiss()
	}
	return val, ok
}

// Set stores a value under key and registers it with the given tags.
func (c *TagCache) Set(key string, value any, ttl time.Duration, tags ...string) {
	if ttl <= 0 {
		ttl = gocache.DefaultExpiration
	}
	c.entries.Set(key, value, ttl)

	c.mu.Lock()
	defer c.mu.Unlock()
	for _, tag := range tags {
		if _, ok := c.keysByTag[tag]; !ok {
			c.keysByTag[tag] = make(map[string]struct{})
		}
		c.keysByTag[tag][key] = struct{}{}
	}
}

// Invalidate drops every entry registered under any of the given tags.
func (c *TagCache) Invalidate(tags ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, tag := range tags {
		for key := range c.keysByTag[tag] {
			c.entries.Delete(key)
		}
		delete(c.keysByTag, tag)
	}
}

var _ Store = (*TagCache)(nil)
