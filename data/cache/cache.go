package cache

import (
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/agentsx-dev/axai-pg/observability"
)

// Cache is a process-local read-through cache for repository lookups.
// Entries expire after the configured TTL and the LRU bound caps memory.
// It is not shared across processes; cross-process staleness is bounded by
// the TTL.
type Cache struct {
	lru *lru.LRU[string, any]
}

func New(size int, ttl time.Duration) *Cache {
	if size <= 0 {
		size = 4096
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Cache{lru: lru.NewLRU[string, any](size, nil, ttl)}
}

// UUIDKey builds the cache key for a lookup by canonical identifier.
func UUIDKey(entity, id string) string {
	return fmt.Sprintf("%s:uuid:%s", entity, id)
}

// ShortKey builds the cache key for a lookup by display identifier.
func ShortKey(entity, id string) string {
	return fmt.Sprintf("%s:id:%s", entity, id)
}

func (c *Cache) Get(entity, key string) (any, bool) {
	if c == nil {
		return nil, false
	}
	v, ok := c.lru.Get(key)
	if ok {
		observability.Current().IncCacheHit(entity)
	} else {
		observability.Current().IncCacheMiss(entity)
	}
	return v, ok
}

func (c *Cache) Set(key string, v any) {
	if c == nil {
		return
	}
	c.lru.Add(key, v)
	observability.Current().SetCacheEntries(c.lru.Len())
}

// Invalidate drops both identifier keys for one row. Callers invalidate
// before every write so a concurrent read repopulates from the database.
func (c *Cache) Invalidate(entity, uuidStr, shortID string) {
	if c == nil {
		return
	}
	if uuidStr != "" {
		c.lru.Remove(UUIDKey(entity, uuidStr))
	}
	if shortID != "" {
		c.lru.Remove(ShortKey(entity, shortID))
	}
	observability.Current().SetCacheEntries(c.lru.Len())
}

func (c *Cache) Purge() {
	if c == nil {
		return
	}
	c.lru.Purge()
	observability.Current().SetCacheEntries(0)
}

func (c *Cache) Len() int {
	if c == nil {
		return 0
	}
	return c.lru.Len()
}
