package cache

import (
	"sync"
	"time"

	"session-hub/internal/domain"
)

// cacheEntry holds one profile document with its expiry.
type cacheEntry struct {
	user      domain.User
	expiresAt time.Time
}

// ProfileCache is a thread-safe in-memory TTL cache of profile documents,
// keyed by subject id. It keeps the poll-driven session watcher from
// re-reading the document store on every observation.
// Implements domain.ProfileCache.
type ProfileCache struct {
	mu      sync.RWMutex
	entries map[string]*cacheEntry
	ttl     time.Duration
}

// NewProfileCache creates a cache with the specified TTL.
func NewProfileCache(ttl time.Duration) *ProfileCache {
	c := &ProfileCache{
		entries: make(map[string]*cacheEntry),
		ttl:     ttl,
	}
	go c.cleanupLoop()
	return c
}

// Get retrieves a cached profile by subject id.
func (c *ProfileCache) Get(id string) (*domain.User, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, found := c.entries[id]
	if !found || time.Now().After(entry.expiresAt) {
		return nil, false
	}
	user := entry.user
	return &user, true
}

// Set stores a profile document.
func (c *ProfileCache) Set(id string, user domain.User) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[id] = &cacheEntry{
		user:      user,
		expiresAt: time.Now().Add(c.ttl),
	}
}

// Invalidate drops the entry after a profile write so the next restore
// reads the merged document.
func (c *ProfileCache) Invalidate(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, id)
}

// cleanup removes expired entries.
func (c *ProfileCache) cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for id, entry := range c.entries {
		if now.After(entry.expiresAt) {
			delete(c.entries, id)
		}
	}
}

// cleanupLoop runs periodic cleanup of expired entries.
func (c *ProfileCache) cleanupLoop() {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		c.cleanup()
	}
}
