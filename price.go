package stocktracker

import (
	"context"
	"errors"
	"sync"
)

// ErrNoQuote is returned by a price session that has no price for a symbol.
var ErrNoQuote = errors.New("no quote")

// Epoch identifies one refresh of a ledger. Epochs start at 1, 0 means that
// the ledger has never been refreshed.
type Epoch uint64

// PriceSource provides market prices.
//
// Prices are only ever read through a session: opening a new session starts a
// fresh epoch, a session never reuses a price memoized by another one.
type PriceSource interface {
	Open(ctx context.Context, epoch Epoch) (PriceSession, error)
}

// PriceSession returns the current price of a symbol within one epoch.
//
// 'reference' is the price the position was bought at, sources that simulate
// prices use it as a base. Asking twice for the same symbol in a session
// returns the same price.
type PriceSession interface {
	Price(ctx context.Context, symbol string, reference Money) (Money, error)
}

// memo caches the prices of one session. It is safe for concurrent use.
type memo struct {
	mu     sync.Mutex
	prices map[string]Money
}

func newMemo() *memo { return &memo{prices: make(map[string]Money)} }

// price returns the memoized price of 'symbol', computing it with 'fetch' on
// first use. Failures are not memoized.
func (m *memo) price(symbol string, fetch func() (Money, error)) (Money, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.prices[symbol]; ok {
		return p, nil
	}
	p, err := fetch()
	if err != nil {
		return Money{}, err
	}
	m.prices[symbol] = p
	return p, nil
}
