package stocktracker

import (
	"iter"
	"slices"
)

// Snapshot is an immutable view of a ledger's positions at one point in time.
//
// Positions are listed in the ledger's order, which is stable between two
// changes of the ledger.
type Snapshot struct {
	epoch     Epoch
	currency  string
	positions []Position
}

func newSnapshot(epoch Epoch, currency string, positions []Position) *Snapshot {
	return &Snapshot{
		epoch:     epoch,
		currency:  currency,
		positions: slices.Clone(positions),
	}
}

// Epoch returns the refresh epoch the market prices come from.
func (s *Snapshot) Epoch() Epoch { return s.epoch }

// Currency returns the currency of all the amounts in the snapshot.
func (s *Snapshot) Currency() string { return s.currency }

// Len returns the number of positions.
func (s *Snapshot) Len() int { return len(s.positions) }

// IsEmpty returns true if there is no position.
func (s *Snapshot) IsEmpty() bool { return len(s.positions) == 0 }

// Positions returns a copy of the positions.
func (s *Snapshot) Positions() []Position { return slices.Clone(s.positions) }

// All iterates over the positions.
func (s *Snapshot) All() iter.Seq[Position] {
	return func(yield func(Position) bool) {
		for _, p := range s.positions {
			if !yield(p) {
				return
			}
		}
	}
}

// Symbols iterates over the position symbols.
func (s *Snapshot) Symbols() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, p := range s.positions {
			if !yield(p.symbol) {
				return
			}
		}
	}
}

// TotalValue returns the market value of the portfolio.
func (s *Snapshot) TotalValue() Money { return sumValue(s.currency, s.positions) }

// TotalCost returns what was paid for the portfolio.
func (s *Snapshot) TotalCost() Money {
	total := M(0, s.currency)
	for _, p := range s.positions {
		total = total.Add(p.TotalCost())
	}
	return total
}

// TotalGainLoss returns the unrealized gain (or loss) of the portfolio.
func (s *Snapshot) TotalGainLoss() Money {
	total := M(0, s.currency)
	for _, p := range s.positions {
		total = total.Add(p.GainLoss())
	}
	return total
}

// TotalReturn returns the gain or loss relative to the portfolio cost.
func (s *Snapshot) TotalReturn() Percent { return ratio(s.TotalGainLoss(), s.TotalCost()) }
