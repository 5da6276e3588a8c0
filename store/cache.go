package store

import "sync"

// cacheEntry holds the last-fetched content and version token for one path.
type cacheEntry struct {
	content []byte
	version string
}

// pathCache is the process-local read-through cache. Staleness is bounded
// only by the process lifetime; invalidation is manual and total.
type pathCache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
}

func newPathCache() *pathCache {
	return &pathCache{
		entries: make(map[string]cacheEntry),
	}
}

func (c *pathCache) Get(path string) ([]byte, string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[path]
	if !ok {
		return nil, "", false
	}
	return entry.content, entry.version, true
}

func (c *pathCache) Put(path string, content []byte, version string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[path] = cacheEntry{content: content, version: version}
}

// Clear drops every cached entry to force fresh fetches.
func (c *pathCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]cacheEntry)
}
