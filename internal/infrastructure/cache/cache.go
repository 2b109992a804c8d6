package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Cache holds computed results for a fixed time, keyed by the query that
// produced them.
type Cache struct {
	items *gocache.Cache
	ttl   time.Duration
}

// New creates a cache whose entries live for ttl. Expired entries are swept
// every ttl.
func New(ttl time.Duration) *Cache {
	return &Cache{
		items: gocache.New(ttl, ttl),
		ttl:   ttl,
	}
}

// Get retrieves an item from the cache
// Returns the item and a boolean indicating if the item was found
func (c *Cache) Get(key string) (interface{}, bool) {
	return c.items.Get(key)
}

func (c *Cache) Set(key string, value interface{}) {
	c.items.Set(key, value, c.ttl)
}

func (c *Cache) Delete(key string) {
	c.items.Delete(key)
}

// Clear removes all items from the cache
func (c *Cache) Clear() {
	c.items.Flush()
}

func (c *Cache) Len() int {
	return c.items.ItemCount()
}
