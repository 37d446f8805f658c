package stocktracker

import (
	"context"
	"testing"
)

func TestSimulator_Range(t *testing.T) {
	ctx := context.Background()
	sim := NewSimulator(7)
	ref := M(100, "USD")
	low, high := M(90, "USD"), M(110, "USD")

	for i := 0; i < 200; i++ {
		s, err := sim.Open(ctx, Epoch(i+1))
		if err != nil {
			t.Fatalf("Open() error = %v", err)
		}
		p, err := s.Price(ctx, "AAPL", ref)
		if err != nil {
			t.Fatalf("Price() error = %v", err)
		}
		if p.value.LessThan(low.value) || p.value.GreaterThan(high.value) {
			t.Fatalf("Price() = %s, want within [90, 110]", p.Fixed())
		}
		if p.Currency() != "USD" {
			t.Errorf("Currency() = %q, want USD", p.Currency())
		}
	}
}

func TestSimulator_SessionIsConsistent(t *testing.T) {
	ctx := context.Background()
	sim := NewSimulator(7)
	s, _ := sim.Open(ctx, 1)

	first, _ := s.Price(ctx, "AAPL", M(100, "USD"))
	// the reference is only used for the first lookup of a session.
	again, _ := s.Price(ctx, "aapl", M(5000, "USD"))
	if !first.Equal(again) {
		t.Errorf("second Price() = %s, want the memoized %s", again.Fixed(), first.Fixed())
	}

	next, _ := sim.Open(ctx, 2)
	other, _ := next.Price(ctx, "AAPL", M(5000, "USD"))
	if other.Equal(first) {
		t.Errorf("a new session reused the price of the previous one")
	}
}

func TestSimulator_Seed(t *testing.T) {
	ctx := context.Background()
	a, _ := NewSimulator(99).Open(ctx, 1)
	b, _ := NewSimulator(99).Open(ctx, 1)
	for _, symbol := range []string{"AAPL", "GOOG", "MSFT"} {
		pa, _ := a.Price(ctx, symbol, M(42.5, "USD"))
		pb, _ := b.Price(ctx, symbol, M(42.5, "USD"))
		if !pa.Equal(pb) {
			t.Errorf("%s: %s != %s with the same seed", symbol, pa.Fixed(), pb.Fixed())
		}
	}
}

func TestSimulator_ZeroReference(t *testing.T) {
	ctx := context.Background()
	s, _ := NewSimulator(3).Open(ctx, 1)
	p, err := s.Price(ctx, "DEAD", M(0, "USD"))
	if err != nil {
		t.Fatalf("Price() error = %v", err)
	}
	if !p.IsZero() {
		t.Errorf("Price() = %s, want 0", p.Fixed())
	}
}
