package pricefeed

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultFallback is the price reported for instruments the cache has never
// seen a quote for.
var DefaultFallback = decimal.NewFromInt(10)

// Cache stores the latest price per instrument in memory. It is the oracle
// the matcher reads: lookups are synchronous, side-effect free, and answer
// the fallback for unknown ids rather than failing.
type Cache struct {
	mu       sync.RWMutex
	prices   map[string]decimal.Decimal
	fallback decimal.Decimal
}

func NewCache(fallback decimal.Decimal) *Cache {
	return &Cache{
		prices:   make(map[string]decimal.Decimal),
		fallback: fallback,
	}
}

func (c *Cache) Set(instrumentID string, price decimal.Decimal) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.prices[instrumentID] = price
}

func (c *Cache) Get(instrumentID string) (decimal.Decimal, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.prices[instrumentID]
	return p, ok
}

// Price implements the matcher's oracle contract.
func (c *Cache) Price(instrumentID string) decimal.Decimal {
	if p, ok := c.Get(instrumentID); ok {
		return p
	}
	return c.fallback
}

// StartPriceUpdater periodically refreshes prices for the given instruments.
func StartPriceUpdater(
	ctx context.Context,
	feed Feed,
	cache *Cache,
	instruments []string,
	interval time.Duration,
) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	refreshOnce(ctx, feed, cache, instruments)

	for {
		select {
		case <-ticker.C:
			refreshOnce(ctx, feed, cache, instruments)
		case <-ctx.Done():
			return
		}
	}
}

func refreshOnce(ctx context.Context, feed Feed, cache *Cache, instruments []string) {
	for _, id := range instruments {
		price, err := feed.GetSpot(ctx, id)
		if err != nil {
			log.Printf("price update failed for %s: %v", id, err)
			continue
		}
		cache.Set(id, price)
	}
}
