package engine

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PriceSource is the oracle the matcher consults for orders without a limit
// price. Price must be fast, synchronous and deterministic within one
// matching pass; unknown ids resolve to an implementation-defined fallback.
type PriceSource interface {
	Price(instrumentID string) decimal.Decimal
}

type Matcher struct {
	store  *OrderStore
	prices PriceSource

	mu    sync.Mutex
	locks map[string]*sync.Mutex // one lock per instrument id
}

func NewMatcher(store *OrderStore, prices PriceSource) *Matcher {
	return &Matcher{
		store:  store,
		prices: prices,
		locks:  make(map[string]*sync.Mutex),
	}
}

// MatchOrders runs one matching pass for the instrument: every buy against
// every sell, in store order, buy-major. There is no price or time priority
// beyond the eligibility check; every eligible pair trades in iteration
// order. Passes for the same instrument are serialized; passes for different
// instruments may run concurrently.
func (m *Matcher) MatchOrders(instrumentID string) []Trade {
	lock := m.instrumentLock(instrumentID)
	lock.Lock()
	defer lock.Unlock()

	buys := m.store.OrdersForSide(instrumentID, SideBuy)
	sells := m.store.OrdersForSide(instrumentID, SideSell)

	trades := make([]Trade, 0)
	for _, buy := range buys {
		for _, sell := range sells {
			if !m.canExecuteTrade(buy, sell) {
				continue
			}
			if buy.IsComposite() || sell.IsComposite() {
				trades = append(trades, m.matchComposite(buy, sell)...)
			} else if tr := m.ExecuteTrade(buy, sell); tr != nil {
				trades = append(trades, *tr)
			}
		}
	}
	return trades
}

// canExecuteTrade holds when both orders reference the same top-level
// instrument id, both are still active with positive quantity, and the
// effective buy price is at or above the effective sell price.
func (m *Matcher) canExecuteTrade(buy, sell *Order) bool {
	if buy.Instrument.ID != sell.Instrument.ID {
		return false
	}
	if !buy.IsActive() || !sell.IsActive() {
		return false
	}
	if !buy.Quantity().IsPositive() || !sell.Quantity().IsPositive() {
		return false
	}
	return m.effectivePrice(buy).GreaterThanOrEqual(m.effectivePrice(sell))
}

// effectivePrice is the order's limit price if present, else the oracle
// price for the order's own instrument.
func (m *Matcher) effectivePrice(o *Order) decimal.Decimal {
	if o.IsMarket {
		return m.prices.Price(o.Instrument.ID)
	}
	return o.Price
}

// ExecuteTrade fills a buy against a sell for the minimum of the two
// remaining quantities. An instrument-id mismatch is silently a no-op, not
// an error. Statuses follow from comparing the trade quantity with each
// side's pre-trade quantity; quantities are decremented afterwards. Filled
// orders are not removed from the store.
func (m *Matcher) ExecuteTrade(buy, sell *Order) *Trade {
	if buy.Instrument.ID != sell.Instrument.ID {
		return nil
	}

	tradeQuantity := decimal.Min(buy.Quantity(), sell.Quantity())

	if tradeQuantity.Equal(buy.Quantity()) {
		buy.SetStatus(StatusFilled)
	} else {
		buy.SetStatus(StatusPartiallyFilled)
	}
	if tradeQuantity.Equal(sell.Quantity()) {
		sell.SetStatus(StatusFilled)
	} else {
		sell.SetStatus(StatusPartiallyFilled)
	}

	buy.SetQuantity(buy.Quantity().Sub(tradeQuantity))
	sell.SetQuantity(sell.Quantity().Sub(tradeQuantity))

	if !tradeQuantity.IsPositive() {
		return nil
	}
	return &Trade{
		ID:           uuid.NewString(),
		BuyOrderID:   buy.ID,
		SellOrderID:  sell.ID,
		BuyTraderID:  buy.TraderID,
		SellTraderID: sell.TraderID,
		InstrumentID: buy.Instrument.ID,
		Price:        m.prices.Price(buy.Instrument.ID),
		Quantity:     tradeQuantity,
		ExecutedAt:   time.Now().UTC(),
	}
}

func (m *Matcher) instrumentLock(instrumentID string) *sync.Mutex {
	m.mu.Lock()
	defer m.mu.Unlock()
	lock, ok := m.locks[instrumentID]
	if !ok {
		lock = &sync.Mutex{}
		m.locks[instrumentID] = lock
	}
	return lock
}
