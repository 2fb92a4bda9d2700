package engine

import "github.com/shopspring/decimal"

// matchComposite decomposes an eligible pair where at least one side is a
// basket into per-component leg executions. Misaligned components are a
// silent no-match: matching just moves on to the next pair, with no partial
// effect and no error.
func (m *Matcher) matchComposite(buy, sell *Order) []Trade {
	buyComponents := componentInstruments(buy)
	sellComponents := componentInstruments(sell)

	if len(buyComponents) != len(sellComponents) {
		return nil
	}
	if !componentsCovered(buyComponents, sellComponents) {
		return nil
	}

	trades := make([]Trade, 0, len(buyComponents))
	buyLegs := make([]*Order, 0, len(buyComponents))
	sellLegs := make([]*Order, 0, len(buyComponents))

	for _, in := range buyComponents {
		buyLeg := legOrder(buy, in)
		sellLeg := legOrder(sell, in)
		if tr := m.ExecuteTrade(buyLeg, sellLeg); tr != nil {
			trades = append(trades, *tr)
		}
		buyLegs = append(buyLegs, buyLeg)
		sellLegs = append(sellLegs, sellLeg)
	}

	aggregateLegStatus(buy, buyLegs)
	aggregateLegStatus(sell, sellLegs)
	return trades
}

// componentInstruments lists a basket's component instruments. A simple
// instrument counts as its own one-element list so a basket can be paired
// leg-by-leg against it.
func componentInstruments(o *Order) []*Instrument {
	if !o.IsComposite() {
		return []*Instrument{o.Instrument}
	}
	out := make([]*Instrument, 0, len(o.Instrument.Components))
	for _, c := range o.Instrument.Components {
		out = append(out, c.Instrument)
	}
	return out
}

// componentsCovered reports whether every instrument id in want appears in
// have. Combined with the length check this makes the two component sets
// interchangeable for leg pairing.
func componentsCovered(want, have []*Instrument) bool {
	for _, w := range want {
		found := false
		for _, h := range have {
			if h.ID == w.ID {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// legQuantity is the parent's share of one component: the component's weight
// on the order's own basket times the parent's remaining quantity. A simple
// parent, or a basket that does not carry the component, contributes zero.
func legQuantity(parent *Order, componentID string) decimal.Decimal {
	if !parent.IsComposite() {
		return decimal.Zero
	}
	return parent.Instrument.ComponentWeight(componentID).Mul(parent.Quantity())
}

// legOrder builds the ephemeral per-component order for one parent. The leg
// id is derived from the parent and component ids so repeated decomposition
// of the same pair names its legs identically.
func legOrder(parent *Order, in *Instrument) *Order {
	leg := &Order{
		ID:         parent.ID + "_" + in.ID,
		TraderID:   parent.TraderID,
		Side:       parent.Side,
		Instrument: in,
		Price:      parent.Price,
		IsMarket:   parent.IsMarket,
		quantity:   legQuantity(parent, in.ID),
		status:     StatusPending,
	}
	return leg
}

// aggregateLegStatus rolls leg outcomes up to the parent: FILLED only when
// every leg filled, PARTIALLY_FILLED when any leg partially filled, else
// PENDING. The parent's own quantity is never touched by decomposition.
func aggregateLegStatus(parent *Order, legs []*Order) {
	allFilled := true
	anyPartial := false
	for _, leg := range legs {
		if !leg.IsFilled() {
			allFilled = false
		}
		if leg.Status() == StatusPartiallyFilled {
			anyPartial = true
		}
	}

	switch {
	case allFilled:
		parent.SetStatus(StatusFilled)
	case anyPartial:
		parent.SetStatus(StatusPartiallyFilled)
	default:
		parent.SetStatus(StatusPending)
	}
}
