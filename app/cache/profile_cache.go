package cache

import (
	"sync"
	"time"

	"nav-hub/app/domain"
)

// cacheEntry represents a cached profile observation.
type cacheEntry struct {
	profile   domain.UserProfile
	expiresAt time.Time
}

// ProfileCache provides thread-safe in-memory caching of the latest observed
// profile per user, with TTL. The router's timeout recovery consults it before
// falling back to a fresh fetch. Implements port.ProfileCachePort.
type ProfileCache struct {
	mu       sync.RWMutex
	entries  map[string]*cacheEntry
	ttl      time.Duration
	stopOnce sync.Once
	stopChan chan struct{}
}

// NewProfileCache creates a new profile cache with the specified TTL.
func NewProfileCache(ttl time.Duration) *ProfileCache {
	c := &ProfileCache{
		entries:  make(map[string]*cacheEntry),
		ttl:      ttl,
		stopChan: make(chan struct{}),
	}
	go c.cleanupLoop()
	return c
}

// Get retrieves the cached profile for a user id.
func (c *ProfileCache) Get(userID string) (*domain.UserProfile, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, found := c.entries[userID]
	if !found || time.Now().After(entry.expiresAt) {
		return nil, false
	}
	profile := entry.profile
	return &profile, true
}

// Set stores a profile observation in the cache.
func (c *ProfileCache) Set(profile *domain.UserProfile) {
	if profile == nil || profile.UserID == "" {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[profile.UserID] = &cacheEntry{
		profile:   *profile,
		expiresAt: time.Now().Add(c.ttl),
	}
}

// Delete drops the cached profile for a user id.
func (c *ProfileCache) Delete(userID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, userID)
}

// Len returns the number of live entries.
func (c *ProfileCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}

// Stop terminates the background cleanup loop.
func (c *ProfileCache) Stop() {
	c.stopOnce.Do(func() {
		close(c.stopChan)
	})
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

	for {
		select {
		case <-ticker.C:
			c.cleanup()
		case <-c.stopChan:
			return
		}
	}
}
