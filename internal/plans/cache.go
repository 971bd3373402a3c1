package plans

import "sync"

// ListCache is a versioned per-owner cache of the plan list. A mutation
// invalidates the owner's entry; the next read repopulates from the store.
// There is no background refresh.
type ListCache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
	version map[string]uint64
}

type cacheEntry struct {
	version uint64
	plans   []Plan
}

func NewListCache() *ListCache {
	return &ListCache{
		entries: make(map[string]cacheEntry),
		version: make(map[string]uint64),
	}
}

// Get returns the cached list when it is still current for the owner.
func (c *ListCache) Get(userID string) ([]Plan, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[userID]
	if !ok || e.version != c.version[userID] {
		return nil, false
	}
	out := make([]Plan, len(e.plans))
	copy(out, e.plans)
	return out, true
}

// Put stores a freshly fetched list at the owner's current version.
func (c *ListCache) Put(userID string, items []Plan) {
	stored := make([]Plan, len(items))
	copy(stored, items)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[userID] = cacheEntry{version: c.version[userID], plans: stored}
}

// Invalidate bumps the owner's version so any cached list goes stale.
func (c *ListCache) Invalidate(userID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.version[userID]++
	delete(c.entries, userID)
}
