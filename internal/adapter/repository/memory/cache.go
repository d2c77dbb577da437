// Package memory provides the in-process cache used when no Redis is
// configured.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/iho/finsight/internal/usecase"
)

type entry struct {
	payload  []byte
	storedAt time.Time
	ttl      time.Duration
}

// Cache implements usecase.Cache with a mutex-guarded map. It is owned by
// the composition root and injected, so independent instances can coexist
// (and tests stay isolated).
type Cache struct {
	mu      sync.RWMutex
	entries map[string]entry
	now     func() time.Time
}

// NewCache creates an empty Cache.
func NewCache() *Cache {
	return &Cache{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// Get retrieves a value by key. Expired entries count as misses.
func (c *Cache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return nil, usecase.ErrCacheMiss
	}

	if e.ttl > 0 && c.now().Sub(e.storedAt) > e.ttl {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()

		return nil, usecase.ErrCacheMiss
	}

	return e.payload, nil
}

// Set stores a value with a TTL. A non-positive TTL keeps the entry until
// the next flush.
func (c *Cache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry{
		payload:  value,
		storedAt: c.now(),
		ttl:      ttl,
	}

	return nil
}

// FlushAll drops every entry.
func (c *Cache) FlushAll(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]entry)

	return nil
}
