package introspect

import (
	"sort"
	"sync"
)

// cache is a string-keyed map safe for concurrent use
type cache[V any] struct {
	mu    sync.RWMutex
	items map[string]V
}

func newCache[V any]() *cache[V] {
	return &cache[V]{items: make(map[string]V)}
}

func (c *cache[V]) Get(key string) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.items[key]
	return v, ok
}

func (c *cache[V]) Set(key string, v V) {
	c.mu.Lock()
	c.items[key] = v
	c.mu.Unlock()
}

// SetIfAbsent stores v unless key already has a value, and returns the stored value
func (c *cache[V]) SetIfAbsent(key string, v V) V {
	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.items[key]; ok {
		return existing
	}
	c.items[key] = v
	return v
}

func (c *cache[V]) Delete(key string) {
	c.mu.Lock()
	delete(c.items, key)
	c.mu.Unlock()
}

// Replace drops every entry and installs items in their place
func (c *cache[V]) Replace(items map[string]V) {
	c.mu.Lock()
	c.items = items
	c.mu.Unlock()
}

func (c *cache[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Keys returns the keys in sorted order
func (c *cache[V]) Keys() []string {
	c.mu.RLock()
	keys := make([]string, 0, len(c.items))
	for k := range c.items {
		keys = append(keys, k)
	}
	c.mu.RUnlock()

	sort.Strings(keys)
	return keys
}
