// Package cache provides a keyed memoization cache shared by the puzzle
// services. Values are computed at most once per key; concurrent callers for
// an uncached key coalesce onto a single computation.
package cache

import (
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Cache memoizes the results of keyed computations. The zero value is not
// usable; use New.
type Cache[K comparable, V any] struct {
	group   singleflight.Group
	mu      sync.RWMutex
	entries map[K]V
}

// New returns an empty cache.
func New[K comparable, V any]() *Cache[K, V] {
	return &Cache[K, V]{entries: make(map[K]V)}
}

// GetOrCompute returns the cached value for key, computing and storing it if
// absent. Concurrent callers for the same uncached key observe at most one
// invocation of compute and all receive its outcome. Failed computations are
// not cached, so a later call may retry.
func (c *Cache[K, V]) GetOrCompute(key K, compute func() (V, error)) (V, error) {
	c.mu.RLock()
	v, ok := c.entries[key]
	c.mu.RUnlock()
	if ok {
		return v, nil
	}

	res, err, _ := c.group.Do(fmt.Sprint(key), func() (any, error) {
		// A previous flight may have stored the value between our map check
		// and Do acquiring the key.
		c.mu.RLock()
		v, ok := c.entries[key]
		c.mu.RUnlock()
		if ok {
			return v, nil
		}

		v, err := compute()
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.entries[key] = v
		c.mu.Unlock()
		return v, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}
	return res.(V), nil
}

// Get returns the cached value for key without computing anything.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.entries[key]
	return v, ok
}

// Len returns the number of cached entries.
func (c *Cache[K, V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
