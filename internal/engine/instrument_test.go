package engine

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func half() decimal.Decimal { return decimal.NewFromFloat(0.5) }

func testComponents(n int) []Component {
	out := make([]Component, 0, n)
	for i := 0; i < n; i++ {
		id := string(rune('1' + i))
		out = append(out, Component{Instrument: NewInstrument(id, "SYM"+id), Weight: half()})
	}
	return out
}

func TestNewCompositeComponentCount(t *testing.T) {
	for _, n := range []int{1, 2, 3} {
		if _, err := NewComposite("b", "BASKET", testComponents(n)); err != nil {
			t.Fatalf("expected %d components to be accepted: %v", n, err)
		}
	}
	for _, n := range []int{0, 4} {
		_, err := NewComposite("b", "BASKET", testComponents(n))
		if !errors.Is(err, ErrInvalidOrder) {
			t.Fatalf("expected %d components to be rejected, got %v", n, err)
		}
	}
}

func TestComponentWeight(t *testing.T) {
	basket, err := NewComposite("b", "BASKET", testComponents(2))
	if err != nil {
		t.Fatal(err)
	}

	if w := basket.ComponentWeight("1"); !w.Equal(half()) {
		t.Fatalf("expected weight 0.5 for component 1, got %s", w)
	}
	if w := basket.ComponentWeight("missing"); !w.IsZero() {
		t.Fatalf("expected zero weight for unknown component, got %s", w)
	}
}

func TestIsComposite(t *testing.T) {
	simple := NewInstrument("1", "AAPL")
	if simple.IsComposite() {
		t.Fatalf("simple instrument reported composite")
	}

	basket, _ := NewComposite("b", "BASKET", testComponents(1))
	if !basket.IsComposite() {
		t.Fatalf("basket not reported composite")
	}
}
