package pricing

import (
	"strings"
	"sync"
	"time"
)

// Cache is a time-boxed price cache. The clock is injected so tests can
// control expiry; TTL defaults to 30 seconds.
type Cache struct {
	mu   sync.RWMutex
	ttl  time.Duration
	now  func() time.Time
	data map[string]cacheEntry
}

type cacheEntry struct {
	price    TokenPrice
	cachedAt time.Time
}

// DefaultTTL matches the pricing service's own refresh cadence.
const DefaultTTL = 30 * time.Second

// NewCache builds a price cache. A zero ttl uses DefaultTTL; a nil clock
// uses time.Now.
func NewCache(ttl time.Duration, now func() time.Time) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if now == nil {
		now = time.Now
	}
	return &Cache{
		ttl:  ttl,
		now:  now,
		data: make(map[string]cacheEntry),
	}
}

// Get returns a cached price that has not expired.
func (c *Cache) Get(token string) (TokenPrice, bool) {
	key := strings.ToLower(token)
	c.mu.RLock()
	entry, ok := c.data[key]
	c.mu.RUnlock()
	if !ok {
		return TokenPrice{}, false
	}
	if c.now().Sub(entry.cachedAt) >= c.ttl {
		return TokenPrice{}, false
	}
	return entry.price, true
}

// Set stores a price under the lowercased token key.
func (c *Cache) Set(token string, price TokenPrice) {
	key := strings.ToLower(token)
	c.mu.Lock()
	c.data[key] = cacheEntry{price: price, cachedAt: c.now()}
	c.mu.Unlock()
}
