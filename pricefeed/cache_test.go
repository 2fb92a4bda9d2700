package pricefeed

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
)

func TestCacheSetGet(t *testing.T) {
	c := NewCache(DefaultFallback)
	c.Set("1", decimal.NewFromInt(150))

	p, ok := c.Get("1")
	if !ok || !p.Equal(decimal.NewFromInt(150)) {
		t.Fatalf("expected 150, got %s (ok=%v)", p, ok)
	}
	if _, ok := c.Get("2"); ok {
		t.Fatalf("expected miss for unknown instrument")
	}
}

func TestCacheFallbackPrice(t *testing.T) {
	c := NewCache(DefaultFallback)

	if p := c.Price("unknown"); !p.Equal(DefaultFallback) {
		t.Fatalf("expected fallback %s, got %s", DefaultFallback, p)
	}

	c.Set("1", decimal.NewFromInt(150))
	if p := c.Price("1"); !p.Equal(decimal.NewFromInt(150)) {
		t.Fatalf("expected 150, got %s", p)
	}
}

func TestRefreshOnce(t *testing.T) {
	feed := NewStaticFeed(map[string]decimal.Decimal{
		"1": decimal.NewFromInt(150),
	})
	c := NewCache(DefaultFallback)

	refreshOnce(context.Background(), feed, c, []string{"1", "2"})

	if p := c.Price("1"); !p.Equal(decimal.NewFromInt(150)) {
		t.Fatalf("expected refreshed price 150, got %s", p)
	}
	// "2" has no quote; the failed refresh must not poison the cache.
	if p := c.Price("2"); !p.Equal(DefaultFallback) {
		t.Fatalf("expected fallback for unquoted instrument, got %s", p)
	}
}
