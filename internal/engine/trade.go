package engine

import (
	"time"

	"github.com/shopspring/decimal"
)

// Trade records one execution between a buy and a sell order. Price is the
// oracle's reference price for the traded instrument at execution time.
type Trade struct {
	ID           string
	BuyOrderID   string
	SellOrderID  string
	BuyTraderID  string
	SellTraderID string
	InstrumentID string
	Price        decimal.Decimal
	Quantity     decimal.Decimal
	ExecutedAt   time.Time
}
