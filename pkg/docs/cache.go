package docs

import (
	"sync"
	"time"
)

// DefaultCacheTTL bounds how long a fetched document body stays fresh.
const DefaultCacheTTL = 3600 * time.Second

type cacheEntry struct {
	content   string
	fetchedAt time.Time
}

// Cache stores fetched document bodies keyed by remote path. Entries go
// stale once their age reaches the TTL; nothing is ever evicted, so the
// cache is bounded by the registry size in practice.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewCache creates a cache with the given TTL (DefaultCacheTTL when zero).
func NewCache(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Cache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get returns the cached content for path while the entry is fresh.
func (c *Cache) Get(path string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.entries[path]
	if !ok || c.now().Sub(entry.fetchedAt) >= c.ttl {
		return "", false
	}
	return entry.content, true
}

// Put stores content for path, overwriting any previous entry.
func (c *Cache) Put(path, content string, fetchedAt time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[path] = cacheEntry{content: content, fetchedAt: fetchedAt}
}

// Len returns the number of entries, fresh or stale.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
