package stocktracker

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
)

// Ledger holds the positions of a portfolio, one per symbol.
//
// Positions are kept in the order their symbol was first added. A Ledger is
// safe for concurrent use.
type Ledger struct {
	mu        sync.Mutex
	source    PriceSource
	currency  string
	epoch     Epoch
	positions []Position     // in insertion order
	index     map[string]int // index positions by symbol
}

// NewLedger creates an empty ledger valued in 'currency' with prices from 'source'.
func NewLedger(source PriceSource, currency string) *Ledger {
	return &Ledger{
		source:    source,
		currency:  currency,
		positions: make([]Position, 0),
		index:     make(map[string]int),
	}
}

// Currency returns the ledger's currency.
func (l *Ledger) Currency() string { return l.currency }

// Add records the purchase of 'quantity' shares of 'symbol' at 'price'.
//
// A first purchase opens the position, later ones are merged into it using a
// weighted average of the cost basis. The market price is not changed until the
// next Refresh.
//
// A ledger has a single currency: 'price' is taken in the ledger's currency
// whatever its own.
//
// Add does not validate its arguments, see [ValidateAdd].
func (l *Ledger) Add(symbol string, quantity Quantity, price Money) {
	l.mu.Lock()
	defer l.mu.Unlock()

	symbol = NormalizeSymbol(symbol)
	price.cur = l.currency
	if i, exists := l.index[symbol]; exists {
		l.positions[i].merge(quantity, price)
		return
	}
	l.index[symbol] = len(l.positions)
	l.positions = append(l.positions, newPosition(symbol, quantity, price))
}

// Remove deletes the position on 'symbol' and reports whether there was one.
func (l *Ledger) Remove(symbol string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	symbol = NormalizeSymbol(symbol)
	i, exists := l.index[symbol]
	if !exists {
		return false
	}
	l.positions = append(l.positions[:i], l.positions[i+1:]...)
	delete(l.index, symbol)
	// positions after 'i' moved one step down.
	for j := i; j < len(l.positions); j++ {
		l.index[l.positions[j].symbol] = j
	}
	return true
}

// Position returns a copy of the position on 'symbol'.
func (l *Ledger) Position(symbol string) (Position, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	i, exists := l.index[NormalizeSymbol(symbol)]
	if !exists {
		return Position{}, false
	}
	return l.positions[i], true
}

// Len returns the number of positions.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.positions)
}

// Epoch returns the epoch of the last Refresh, 0 if never refreshed.
func (l *Ledger) Epoch() Epoch {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.epoch
}

// Refresh updates the market price of every position.
//
// It starts a new epoch and opens a single price session for it, so that all
// positions are valued against the same prices. Each position is priced with
// its cost basis as reference.
//
// A position whose price cannot be fetched, or is quoted in another currency,
// keeps its previous market price; all such failures are returned together.
func (l *Ledger) Refresh(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.refresh(ctx)
}

// RefreshSnapshot refreshes the prices and returns the resulting snapshot,
// nothing can change the ledger in between. The snapshot is returned even
// when some prices could not be refreshed.
func (l *Ledger) RefreshSnapshot(ctx context.Context) (*Snapshot, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	err := l.refresh(ctx)
	return newSnapshot(l.epoch, l.currency, l.positions), err
}

// refresh implements Refresh, the caller must hold l.mu.
func (l *Ledger) refresh(ctx context.Context) error {
	l.epoch++
	session, err := l.source.Open(ctx, l.epoch)
	if err != nil {
		return fmt.Errorf("cannot open price session for epoch %d: %w", l.epoch, err)
	}

	var errs error
	for i := range l.positions {
		p := &l.positions[i]
		price, err := session.Price(ctx, p.symbol, p.costBasis)
		if err == nil && price.cur != "" && price.cur != l.currency {
			err = fmt.Errorf("%w: quoted in %s, the portfolio is in %s", ErrNoQuote, price.cur, l.currency)
		}
		if err != nil {
			log.Printf("could not refresh %s, keeping %s: %v", p.symbol, p.marketPrice.Fixed(), err)
			errs = errors.Join(errs, fmt.Errorf("cannot refresh %s: %w", p.symbol, err))
			continue
		}
		p.marketPrice = price.in(l.currency)
	}
	return errs
}

// Snapshot returns an immutable copy of all the positions.
func (l *Ledger) Snapshot() *Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	return newSnapshot(l.epoch, l.currency, l.positions)
}

// TotalValue returns the sum of the market value of all positions.
func (l *Ledger) TotalValue() Money {
	l.mu.Lock()
	defer l.mu.Unlock()
	return sumValue(l.currency, l.positions)
}

func sumValue(currency string, positions []Position) Money {
	total := M(0, currency)
	for _, p := range positions {
		total = total.Add(p.TotalValue())
	}
	return total
}
