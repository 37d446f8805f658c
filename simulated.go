package stocktracker

import (
	"context"
	"math/rand/v2"
	"sync"

	"github.com/shopspring/decimal"
)

// maxFluctuation is the largest relative move the Simulator applies to a
// reference price, in both directions.
var maxFluctuation = decimal.NewFromFloat(0.10)

// Simulator is a PriceSource that makes prices up: each price is the reference
// price moved by a uniform random fluctuation in [-10%, +10%], never negative.
type Simulator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSimulator returns a Simulator. The same non-zero seed always produces the
// same sequence of prices; a zero seed picks a random one.
func NewSimulator(seed uint64) *Simulator {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return &Simulator{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Open starts a new session with an empty cache.
func (s *Simulator) Open(_ context.Context, _ Epoch) (PriceSession, error) {
	return &simulatedSession{sim: s, memo: newMemo()}, nil
}

// fluctuation returns a random number in [-0.1, 0.1).
func (s *Simulator) fluctuation() decimal.Decimal {
	s.mu.Lock()
	f := s.rng.Float64()
	s.mu.Unlock()
	return decimal.NewFromFloat(f*2 - 1).Mul(maxFluctuation)
}

type simulatedSession struct {
	sim  *Simulator
	memo *memo
}

func (s *simulatedSession) Price(_ context.Context, symbol string, reference Money) (Money, error) {
	return s.memo.price(NormalizeSymbol(symbol), func() (Money, error) {
		price := Money{value: reference.value.Mul(decimal.NewFromInt(1).Add(s.sim.fluctuation())), cur: reference.cur}
		if price.IsNegative() {
			price = M(0, reference.cur)
		}
		return price, nil
	})
}
