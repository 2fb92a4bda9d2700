package pricefeed

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
)

// StaticFeed serves a fixed price table. Used by the demo binary and tests
// in place of a live quote endpoint.
type StaticFeed struct {
	prices map[string]decimal.Decimal
}

func NewStaticFeed(prices map[string]decimal.Decimal) *StaticFeed {
	copied := make(map[string]decimal.Decimal, len(prices))
	for id, p := range prices {
		copied[id] = p
	}
	return &StaticFeed{prices: copied}
}

func (f *StaticFeed) GetSpot(_ context.Context, instrumentID string) (decimal.Decimal, error) {
	p, ok := f.prices[instrumentID]
	if !ok {
		return decimal.Zero, fmt.Errorf("pricefeed: no price for %s", instrumentID)
	}
	return p, nil
}
