package cache

import (
	"fmt"
	"sync"
	"time"

	"github.com/dgraph-io/ristretto"
)

// Namespace groups keys so one kind of entry can be cleared without
// touching the others.
type Namespace string

const (
	Quotes Namespace = "quotes"
)

var namespaces = []Namespace{Quotes}

// ParseNamespace resolves the name used by the admin cache-clear route.
func ParseNamespace(name string) (Namespace, error) {
	for _, ns := range namespaces {
		if string(ns) == name {
			return ns, nil
		}
	}
	return "", fmt.Errorf("unknown cache %q", name)
}

// Cache wraps a ristretto cache and remembers which keys were written under
// each namespace. Ristretto cannot enumerate its own keys.
type Cache struct {
	store *ristretto.Cache

	mu   sync.Mutex
	keys map[Namespace]map[string]struct{}
}

func New() (*Cache, error) {
	store, err := ristretto.NewCache(&ristretto.Config{
		NumCounters:        10000, // number of keys to track frequency of
		MaxCost:            10000,
		BufferItems:        64, // number of keys per Get buffer
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cache: %w", err)
	}
	return &Cache{store: store, keys: make(map[Namespace]map[string]struct{})}, nil
}

func key(ns Namespace, k string) string {
	return string(ns) + ":" + k
}

// Set stores value under ns/k for ttl. A zero ttl never expires. The write is
// visible to Get once Set returns.
func (c *Cache) Set(ns Namespace, k string, value interface{}, ttl time.Duration) {
	full := key(ns, k)
	c.mu.Lock()
	if c.keys[ns] == nil {
		c.keys[ns] = make(map[string]struct{})
	}
	c.keys[ns][full] = struct{}{}
	c.mu.Unlock()

	c.store.SetWithTTL(full, value, 1, ttl)
	c.store.Wait()
}

// Get returns the value under ns/k. A miss forgets the key, since ristretto
// drops expired and evicted entries without telling us.
func (c *Cache) Get(ns Namespace, k string) (interface{}, bool) {
	full := key(ns, k)
	v, ok := c.store.Get(full)
	if !ok {
		c.mu.Lock()
		delete(c.keys[ns], full)
		c.mu.Unlock()
	}
	return v, ok
}

func (c *Cache) Del(ns Namespace, k string) {
	full := key(ns, k)
	c.mu.Lock()
	delete(c.keys[ns], full)
	c.mu.Unlock()
	c.store.Del(full)
}

// Clear drops every key written under ns and reports how many were tracked.
func (c *Cache) Clear(ns Namespace) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := len(c.keys[ns])
	for full := range c.keys[ns] {
		c.store.Del(full)
	}
	c.keys[ns] = make(map[string]struct{})
	return n
}

func (c *Cache) Close() {
	c.store.Close()
}
