package engine

import (
	"fmt"
	"sync"
)

// OrderStore holds the canonical order records, keyed by id. Insertion order
// is preserved and is what the matcher iterates in, so it acts as the
// de-facto match priority. Orders are never removed on fill; cancel is the
// only removal path.
type OrderStore struct {
	mu     sync.RWMutex
	orders map[string]*Order
	ids    []string // insertion order
}

func NewOrderStore() *OrderStore {
	return &OrderStore{orders: make(map[string]*Order)}
}

// Add validates and retains an order. Every validation failure wraps
// ErrInvalidOrder and leaves the store untouched.
func (s *OrderStore) Add(o *Order) error {
	if err := validateOrder(o); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.orders[o.ID]; !exists {
		s.ids = append(s.ids, o.ID)
	}
	s.orders[o.ID] = o
	return nil
}

// Cancel removes the order entirely. Cancellation is not a status; a
// cancelled order is simply gone.
func (s *OrderStore) Cancel(orderID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.orders[orderID]; !ok {
		return fmt.Errorf("%w: %s", ErrOrderNotFound, orderID)
	}
	delete(s.orders, orderID)
	for i, id := range s.ids {
		if id == orderID {
			s.ids = append(s.ids[:i], s.ids[i+1:]...)
			break
		}
	}
	return nil
}

// Get returns the order with the given id.
func (s *OrderStore) Get(orderID string) (*Order, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.orders[orderID]
	return o, ok
}

// OrdersFor returns, in insertion order, every order whose instrument has
// the given id or whose basket contains a component with that id.
func (s *OrderStore) OrdersFor(instrumentID string) []*Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Order, 0)
	for _, id := range s.ids {
		o := s.orders[id]
		if referencesInstrument(o, instrumentID) {
			out = append(out, o)
		}
	}
	return out
}

// OrdersForSide is OrdersFor additionally filtered by side.
func (s *OrderStore) OrdersForSide(instrumentID string, side Side) []*Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Order, 0)
	for _, id := range s.ids {
		o := s.orders[id]
		if o.Side == side && referencesInstrument(o, instrumentID) {
			out = append(out, o)
		}
	}
	return out
}

func referencesInstrument(o *Order, instrumentID string) bool {
	if o.Instrument.ID == instrumentID {
		return true
	}
	for _, c := range o.Instrument.Components {
		if c.Instrument.ID == instrumentID {
			return true
		}
	}
	return false
}

func validateOrder(o *Order) error {
	if o == nil {
		return fmt.Errorf("%w: order is nil", ErrInvalidOrder)
	}
	if o.ID == "" {
		return fmt.Errorf("%w: order id is empty", ErrInvalidOrder)
	}
	if o.TraderID == "" {
		return fmt.Errorf("%w: trader id is empty", ErrInvalidOrder)
	}
	if o.Side != SideBuy && o.Side != SideSell {
		return fmt.Errorf("%w: side is missing", ErrInvalidOrder)
	}
	if o.Instrument == nil {
		return fmt.Errorf("%w: instrument is missing", ErrInvalidOrder)
	}
	if !o.quantity.IsPositive() {
		return fmt.Errorf("%w: quantity must be positive", ErrInvalidOrder)
	}
	// Insertion-time basket check; a basket built outside NewComposite may
	// carry any component count.
	if n := len(o.Instrument.Components); n > maxComponents {
		return fmt.Errorf("%w: basket %s must have between %d and %d components, got %d",
			ErrInvalidOrder, o.Instrument.ID, minComponents, maxComponents, n)
	}
	return nil
}
