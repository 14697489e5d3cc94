package cache

import (
	"context"
	"sync"
	"time"

	"currency-gateway/pkg/logger"
)

type entry struct {
	value     any
	expiresAt time.Time
}

// MemoryCache is a mutex-guarded key/value store with per-entry expiry.
// A read of an expired entry reports a miss and purges the entry.
type MemoryCache struct {
	entries    map[string]entry
	mutex      sync.RWMutex
	defaultTTL time.Duration
	log        *logger.Logger
}

func NewMemoryCache(defaultTTL time.Duration, log *logger.Logger) *MemoryCache {
	return &MemoryCache{
		entries:    make(map[string]entry),
		defaultTTL: defaultTTL,
		log:        log,
	}
}

func (c *MemoryCache) Get(ctx context.Context, key string) (any, bool) {
	c.mutex.RLock()
	ent, found := c.entries[key]
	c.mutex.RUnlock()

	if !found {
		c.log.Debug("Cache miss", "key", key)
		return nil, false
	}

	if !time.Now().Before(ent.expiresAt) {
		c.mutex.Lock()
		// Re-check under the write lock: a concurrent Set may have
		// replaced the entry since the read lock was dropped.
		if current, ok := c.entries[key]; ok && !time.Now().Before(current.expiresAt) {
			delete(c.entries, key)
		}
		c.mutex.Unlock()
		c.log.Debug("Cache entry expired", "key", key)
		return nil, false
	}

	c.log.Debug("Cache hit", "key", key)
	return ent.value, true
}

func (c *MemoryCache) Set(ctx context.Context, key string, value any) {
	c.SetTTL(ctx, key, value, c.defaultTTL)
}

func (c *MemoryCache) SetTTL(ctx context.Context, key string, value any, ttl time.Duration) {
	c.mutex.Lock()
	c.entries[key] = entry{
		value:     value,
		expiresAt: time.Now().Add(ttl),
	}
	c.mutex.Unlock()

	c.log.Debug("Cache set", "key", key, "ttl", ttl)
}

func (c *MemoryCache) Len() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	return len(c.entries)
}

// ClearExpired removes every expired entry and returns how many were dropped.
func (c *MemoryCache) ClearExpired(ctx context.Context) int {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	now := time.Now()
	removed := 0

	for key, ent := range c.entries {
		if !now.Before(ent.expiresAt) {
			delete(c.entries, key)
			removed++
		}
	}

	if removed > 0 {
		c.log.Info("Cleared expired cache entries", "count", removed)
	}
	return removed
}
