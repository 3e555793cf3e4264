package text

import (
	"cmp"
	"slices"
	"sync"
)

// Cache is a generic thread-safe LRU cache with soft limit.
// When the cache exceeds softLimit, the least recently used quarter is
// evicted.
//
// Cache must not be copied after creation (has mutex).
type Cache[K comparable, V any] struct {
	mu        sync.Mutex
	entries   map[K]*cacheEntry[V]
	softLimit int
	tick      int64 // Monotonic access counter
}

// cacheEntry holds a cached value with its access time.
type cacheEntry[V any] struct {
	value V
	atime int64
}

// NewCache creates a new cache with the given soft limit.
// A softLimit of 0 means unlimited.
func NewCache[K comparable, V any](softLimit int) *Cache[K, V] {
	return &Cache[K, V]{
		entries:   make(map[K]*cacheEntry[V]),
		softLimit: softLimit,
	}
}

// Get retrieves a value from the cache.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	c.tick++
	entry.atime = c.tick
	return entry.value, true
}

// Set stores a value in the cache.
func (c *Cache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store(key, value)
}

// GetOrCreate returns the cached value or creates it.
// create is called under lock, so concurrent callers never build the same
// entry twice.
func (c *Cache[K, V]) GetOrCreate(key K, create func() V) V {
	c.mu.Lock()
	defer c.mu.Unlock()

	if entry, ok := c.entries[key]; ok {
		c.tick++
		entry.atime = c.tick
		return entry.value
	}
	value := create()
	c.store(key, value)
	return value
}

// Clear removes all entries from the cache.
func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[K]*cacheEntry[V])
	c.tick = 0
}

// Len returns the number of entries in the cache.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// store inserts value and evicts if needed. Caller must hold c.mu.
func (c *Cache[K, V]) store(key K, value V) {
	c.tick++
	c.entries[key] = &cacheEntry[V]{value: value, atime: c.tick}
	if c.softLimit > 0 && len(c.entries) > c.softLimit {
		c.evictOldest()
	}
}

// evictOldest removes the oldest entries until the cache is down to three
// quarters of softLimit. Caller must hold c.mu.
func (c *Cache[K, V]) evictOldest() {
	target := max(c.softLimit*3/4, 1)
	toEvict := len(c.entries) - target
	if toEvict <= 0 {
		return
	}

	type aged struct {
		key   K
		atime int64
	}
	all := make([]aged, 0, len(c.entries))
	for key, e := range c.entries {
		all = append(all, aged{key: key, atime: e.atime})
	}
	slices.SortFunc(all, func(a, b aged) int { return cmp.Compare(a.atime, b.atime) })

	for _, e := range all[:toEvict] {
		delete(c.entries, e.key)
	}
}
