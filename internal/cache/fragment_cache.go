package cache

import (
	"sync"
	"time"
)

// IndexFeedKey is the fixed key the rendered global feed is cached under.
const IndexFeedKey = "index_page"

type entry struct {
	data      []byte
	expiresAt time.Time
}

// FragmentCache holds rendered response fragments for a bounded time.
// Invalidation is by TTL only: writes to the underlying data do not evict
// an entry, so readers may observe a stale fragment until it expires.
// Concurrent repopulation after expiry is last-writer-wins.
type FragmentCache struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration
	now     func() time.Time
}

// NewFragmentCache creates a cache whose entries live for ttl.
func NewFragmentCache(ttl time.Duration) *FragmentCache {
	return &FragmentCache{
		entries: make(map[string]entry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get returns the cached fragment for key, or false if absent or expired.
func (c *FragmentCache) Get(key string) ([]byte, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	if !ok || c.now().After(e.expiresAt) {
		return nil, false
	}
	return e.data, true
}

// Set stores a fragment under key with a fresh TTL.
func (c *FragmentCache) Set(key string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry{
		data:      data,
		expiresAt: c.now().Add(c.ttl),
	}
}

// Clear drops every cached fragment.
func (c *FragmentCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]entry)
}
