package engine

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

type Side string

const (
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

func ParseSide(s string) (Side, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "BUY":
		return SideBuy, nil
	case "SELL":
		return SideSell, nil
	}
	return "", fmt.Errorf("%w: unknown side %q", ErrInvalidOrder, s)
}

type OrderStatus string

const (
	StatusPending         OrderStatus = "PENDING"
	StatusPartiallyFilled OrderStatus = "PARTIALLY_FILLED"
	StatusFilled          OrderStatus = "FILLED"
)

// Order is a resting request to trade an instrument. Quantity is the live
// remaining quantity; it only ever moves down as trades execute, and the
// originally requested quantity is not retained. Quantity and status are
// mutated through the setters only.
type Order struct {
	ID         string
	TraderID   string
	Side       Side
	Instrument *Instrument
	Price      decimal.Decimal // limit price; ignored when IsMarket
	IsMarket   bool            // true when no limit price was given

	quantity decimal.Decimal
	status   OrderStatus
}

// NewLimitOrder builds a PENDING order with an explicit limit price.
func NewLimitOrder(id, traderID string, side Side, in *Instrument, quantity, price decimal.Decimal) *Order {
	return &Order{
		ID:         id,
		TraderID:   traderID,
		Side:       side,
		Instrument: in,
		Price:      price,
		quantity:   quantity,
		status:     StatusPending,
	}
}

// NewMarketOrder builds a PENDING order without a limit price; the matcher
// prices it from the oracle.
func NewMarketOrder(id, traderID string, side Side, in *Instrument, quantity decimal.Decimal) *Order {
	return &Order{
		ID:         id,
		TraderID:   traderID,
		Side:       side,
		Instrument: in,
		IsMarket:   true,
		quantity:   quantity,
		status:     StatusPending,
	}
}

func (o *Order) Quantity() decimal.Decimal { return o.quantity }

func (o *Order) Status() OrderStatus { return o.status }

func (o *Order) SetQuantity(q decimal.Decimal) { o.quantity = q }

func (o *Order) SetStatus(s OrderStatus) { o.status = s }

// IsActive reports whether the order is still eligible to trade.
func (o *Order) IsActive() bool {
	return o.status == StatusPending || o.status == StatusPartiallyFilled
}

func (o *Order) IsFilled() bool { return o.status == StatusFilled }

func (o *Order) IsComposite() bool {
	return o.Instrument != nil && o.Instrument.IsComposite()
}
