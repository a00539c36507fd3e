// Package recency keeps a bounded window of recently issued track keys
// so consecutive rounds do not repeat the same song. Eviction is pure
// FIFO: a duplicate Mark neither re-inserts nor reorders.
package recency

import "sync"

// Cache is a fixed-capacity FIFO set. The zero value is not usable;
// construct with New. All methods are safe for concurrent use.
type Cache struct {
	mu       sync.Mutex
	capacity int
	order    []string
	members  map[string]struct{}
}

func New(capacity int) *Cache {
	if capacity < 1 {
		capacity = 1
	}
	return &Cache{
		capacity: capacity,
		members:  make(map[string]struct{}, capacity),
	}
}

// Contains reports whether key is inside the recency window.
func (c *Cache) Contains(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.members[key]
	return ok
}

// Mark records key as recently issued. Marking a key already present is
// a no-op; at capacity the single oldest entry is evicted first.
func (c *Cache) Mark(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mark(key)
}

// MarkIfFresh marks key and reports true if it was not already present.
// The check and the mark run under one lock acquisition so two
// concurrent selections cannot both claim the same track as fresh.
func (c *Cache) MarkIfFresh(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.members[key]; ok {
		return false
	}
	c.mark(key)
	return true
}

// Len returns the current number of tracked keys.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.order)
}

func (c *Cache) mark(key string) {
	if _, ok := c.members[key]; ok {
		return
	}
	if len(c.order) >= c.capacity {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.members, oldest)
	}
	c.order = append(c.order, key)
	c.members[key] = struct{}{}
}
