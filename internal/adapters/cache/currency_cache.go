package cache

import (
	"fmt"
	"sync"
	"time"

	"currencyconv/internal/domain"

	"github.com/dgraph-io/ristretto"
)

// RistrettoCurrencyCache maps normalized currency names to currencies.
// Every entry costs 1, so maxItems bounds the number of cached currencies.
type RistrettoCurrencyCache struct {
	cache *ristretto.Cache
	ttl   time.Duration
	// -----
	mu  sync.Mutex
	gen uint64
}

func NewCurrencyCache(maxItems int64, ttl time.Duration) (*RistrettoCurrencyCache, error) {
	if maxItems <= 0 {
		return nil, fmt.Errorf("create currency cache failed: max items must be positive, got %d", maxItems)
	}
	c, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 10 * maxItems,
		MaxCost:     maxItems,
		BufferItems: 64,
		// cost is an item count, not a byte size
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, fmt.Errorf("create currency cache failed: %w", err)
	}
	return &RistrettoCurrencyCache{cache: c, ttl: ttl}, nil
}

func (c *RistrettoCurrencyCache) Get(name string) (domain.Currency, bool) {
	if v, ok := c.cache.Get(name); ok {
		cur, ok := v.(domain.Currency)
		return cur, ok
	}
	return domain.Currency{}, false
}

func (c *RistrettoCurrencyCache) Generation() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gen
}

// Set stores cur unless the cache was invalidated after gen was read.
func (c *RistrettoCurrencyCache) Set(gen uint64, cur domain.Currency) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return false
	}
	c.set(cur)
	return true
}

// Reset replaces the whole content with all unless the cache was invalidated
// after gen was read.
func (c *RistrettoCurrencyCache) Reset(gen uint64, all []domain.Currency) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return false
	}
	c.cache.Clear()
	for _, cur := range all {
		c.set(cur)
	}
	return true
}

// Invalidate drops names and waits for the write buffer to drain, so a Set
// queued before the call cannot resurrect a stale entry afterwards.
func (c *RistrettoCurrencyCache) Invalidate(names ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	for _, name := range names {
		c.cache.Del(name)
	}
	c.cache.Wait()
}

func (c *RistrettoCurrencyCache) Close() { c.cache.Close() }

func (c *RistrettoCurrencyCache) set(cur domain.Currency) {
	if c.ttl > 0 {
		c.cache.SetWithTTL(cur.Name, cur, 1, c.ttl)
		return
	}
	c.cache.Set(cur.Name, cur, 1)
}
