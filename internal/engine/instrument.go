package engine

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Component is one weighted constituent of a basket instrument.
type Component struct {
	Instrument *Instrument
	Weight     decimal.Decimal
}

// Instrument is a tradable identity. A simple instrument has no components;
// a basket (composite) instrument carries 1 to 3 weighted components.
type Instrument struct {
	ID         string
	Symbol     string
	Components []Component // empty for simple instruments
}

const (
	minComponents = 1
	maxComponents = 3
)

func NewInstrument(id, symbol string) *Instrument {
	return &Instrument{ID: id, Symbol: symbol}
}

// NewComposite builds a basket instrument. The component count is checked
// here at construction time; the store re-checks it on insertion because a
// basket may have been built elsewhere.
func NewComposite(id, symbol string, components []Component) (*Instrument, error) {
	if len(components) < minComponents || len(components) > maxComponents {
		return nil, fmt.Errorf("%w: basket %s must have between %d and %d components, got %d",
			ErrInvalidOrder, id, minComponents, maxComponents, len(components))
	}
	return &Instrument{ID: id, Symbol: symbol, Components: components}, nil
}

// IsComposite reports whether the instrument is a basket.
func (in *Instrument) IsComposite() bool {
	return len(in.Components) > 0
}

// ComponentWeight returns the weight of the component with the given id,
// or zero if the instrument does not carry it.
func (in *Instrument) ComponentWeight(componentID string) decimal.Decimal {
	for _, c := range in.Components {
		if c.Instrument.ID == componentID {
			return c.Weight
		}
	}
	return decimal.Zero
}
