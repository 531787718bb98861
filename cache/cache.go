package cache

import (
	"sync"
	"time"
)

// Tunable defaults; any positive values are valid.
const (
	DefaultCapacity = 512
	DefaultTTL      = 10 * time.Minute
)

type entry[V any] struct {
	value    V
	storedAt time.Time
	ttl      time.Duration
}

// Cache is a bounded FIFO cache with lazy TTL expiry. Safe for concurrent
// use.
type Cache[V any] struct {
	mu       sync.Mutex
	entries  map[string]entry[V]
	order    []string
	capacity int
	ttl      time.Duration
	enabled  bool

	now func() time.Time
}

// New creates a cache. Zero capacity or TTL select the defaults.
func New[V any](capacity int, ttl time.Duration) *Cache[V] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache[V]{
		entries:  make(map[string]entry[V]),
		capacity: capacity,
		ttl:      ttl,
		enabled:  true,
		now:      time.Now,
	}
}

// Get returns the cached value for key. An entry past its TTL is treated
// as absent and removed as a side effect of the read.
func (c *Cache[V]) Get(key string) (V, bool) {
	var zero V

	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.enabled {
		return zero, false
	}

	e, ok := c.entries[key]
	if !ok {
		return zero, false
	}
	if c.now().Sub(e.storedAt) > e.ttl {
		delete(c.entries, key)
		return zero, false
	}
	return e.value, true
}

// Set stores value under key. At capacity the oldest-inserted surviving
// entry is evicted first.
func (c *Cache[V]) Set(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.enabled {
		return
	}

	if _, exists := c.entries[key]; exists {
		// Refresh in place; insertion order is unchanged.
		c.entries[key] = entry[V]{value: value, storedAt: c.now(), ttl: c.ttl}
		return
	}

	for len(c.entries) >= c.capacity {
		c.evictOldest()
	}

	c.entries[key] = entry[V]{value: value, storedAt: c.now(), ttl: c.ttl}
	c.order = append(c.order, key)
}

// evictOldest removes the earliest-inserted key still present. Order may
// hold keys already removed by expiry reads; those are skipped.
func (c *Cache[V]) evictOldest() {
	for len(c.order) > 0 {
		oldest := c.order[0]
		c.order = c.order[1:]
		if _, ok := c.entries[oldest]; ok {
			delete(c.entries, oldest)
			return
		}
	}
}

// SetEnabled toggles the cache. Disabling clears all entries and turns
// Get/Set into no-ops until re-enabled.
func (c *Cache[V]) SetEnabled(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.enabled && !enabled {
		c.entries = make(map[string]entry[V])
		c.order = nil
	}
	c.enabled = enabled
}

// Enabled reports whether the cache is accepting reads and writes.
func (c *Cache[V]) Enabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.enabled
}

// Clear removes all entries.
func (c *Cache[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry[V])
	c.order = nil
}

// Len returns the number of stored entries, including any not yet observed
// as expired.
func (c *Cache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
