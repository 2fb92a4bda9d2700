package pricefeed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
)

// Feed is an upstream source of spot prices.
type Feed interface {
	GetSpot(ctx context.Context, instrumentID string) (decimal.Decimal, error)
}

// HTTPFeed implements Feed against a JSON quote endpoint. The endpoint is
// expected to answer GET {base}/price?instrument={id} with a body like
// {"<id>": {"usd": 150.0}}.
type HTTPFeed struct {
	client  *http.Client
	baseURL string
}

func NewHTTPFeed(baseURL string) *HTTPFeed {
	return &HTTPFeed{
		client:  &http.Client{Timeout: 5 * time.Second},
		baseURL: baseURL,
	}
}

type quoteResponse map[string]struct {
	USD float64 `json:"usd"`
}

// GetSpot returns the spot price in USD for the given instrument id.
func (f *HTTPFeed) GetSpot(ctx context.Context, instrumentID string) (decimal.Decimal, error) {
	url := fmt.Sprintf("%s/price?instrument=%s", f.baseURL, instrumentID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return decimal.Zero, err
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return decimal.Zero, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, fmt.Errorf("pricefeed: unexpected status %d", resp.StatusCode)
	}

	var body quoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return decimal.Zero, err
	}

	entry, ok := body[instrumentID]
	if !ok {
		return decimal.Zero, fmt.Errorf("pricefeed: no price for %s", instrumentID)
	}

	return decimal.NewFromFloat(entry.USD), nil
}
