package cache

import (
	"sync"
	"time"
)

type cacheEntry[V any] struct {
	value     V
	expiresAt time.Time
}

// TTLCache stores values in memory with per-entry TTLs.
type TTLCache[K comparable, V any] struct {
	mu    sync.RWMutex
	items map[K]cacheEntry[V]
	now   func() time.Time
}

// NewTTLCache constructs a new TTLCache instance.
func NewTTLCache[K comparable, V any]() *TTLCache[K, V] {
	return &TTLCache[K, V]{items: make(map[K]cacheEntry[V]), now: time.Now}
}

// WithClock replaces the time source. Used by tests.
func (c *TTLCache[K, V]) WithClock(now func() time.Time) *TTLCache[K, V] {
	c.now = now
	return c
}

// Get returns a cached value if it exists and has not expired.
func (c *TTLCache[K, V]) Get(key K) (V, bool) {
	var zero V
	if c == nil {
		return zero, false
	}
	c.mu.RLock()
	entry, ok := c.items[key]
	c.mu.RUnlock()
	if !ok {
		return zero, false
	}
	if c.expired(entry) {
		c.Delete(key)
		return zero, false
	}
	return entry.value, true
}

// Set stores a value with the provided TTL. A non-positive TTL never expires.
func (c *TTLCache[K, V]) Set(key K, value V, ttl time.Duration) {
	if c == nil {
		return
	}
	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = c.now().Add(ttl)
	}
	c.mu.Lock()
	c.items[key] = cacheEntry[V]{value: value, expiresAt: expiresAt}
	c.mu.Unlock()
}

// SetIfBelow stores the value only while fewer than limit live entries are
// held. It reports whether the value was stored.
func (c *TTLCache[K, V]) SetIfBelow(key K, value V, ttl time.Duration, limit int) bool {
	if c == nil {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.purgeLocked()
	if len(c.items) >= limit {
		return false
	}
	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = c.now().Add(ttl)
	}
	c.items[key] = cacheEntry[V]{value: value, expiresAt: expiresAt}
	return true
}

// Delete removes a cached entry.
func (c *TTLCache[K, V]) Delete(key K) {
	if c == nil {
		return
	}
	c.mu.Lock()
	delete(c.items, key)
	c.mu.Unlock()
}

// Len returns the number of live entries.
func (c *TTLCache[K, V]) Len() int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.purgeLocked()
	return len(c.items)
}

func (c *TTLCache[K, V]) purgeLocked() {
	for k, e := range c.items {
		if c.expired(e) {
			delete(c.items, k)
		}
	}
}

func (c *TTLCache[K, V]) expired(e cacheEntry[V]) bool {
	return !e.expiresAt.IsZero() && c.now().After(e.expiresAt)
}
