package stocktracker

import "fmt"

// Position is a read-only view of the aggregate holding of one symbol.
//
// Positions are values: the ledger hands out copies, mutating a Position has no
// effect on the ledger.
type Position struct {
	symbol      string
	quantity    Quantity
	costBasis   Money // average price paid per share
	marketPrice Money // last observed price per share
}

// newPosition opens a position on a first purchase. The market price starts at
// the purchase price until the next refresh.
func newPosition(symbol string, quantity Quantity, price Money) Position {
	return Position{
		symbol:      symbol,
		quantity:    quantity,
		costBasis:   price,
		marketPrice: price,
	}
}

// merge adds a purchase lot to the position and recomputes the weighted-average
// cost basis. The market price is left untouched.
func (p *Position) merge(quantity Quantity, price Money) {
	total := p.quantity.Add(quantity)
	cost := p.costBasis.Mul(p.quantity).Add(price.Mul(quantity))
	p.quantity = total
	p.costBasis = cost.Div(total)
}

func (p Position) Symbol() string     { return p.symbol }
func (p Position) Quantity() Quantity { return p.quantity }
func (p Position) CostBasis() Money   { return p.costBasis }
func (p Position) MarketPrice() Money { return p.marketPrice }
func (p Position) TotalValue() Money  { return p.marketPrice.Mul(p.quantity) }
func (p Position) TotalCost() Money   { return p.costBasis.Mul(p.quantity) }
func (p Position) GainLoss() Money    { return p.marketPrice.Sub(p.costBasis).Mul(p.quantity) }

// Return is the gain or loss relative to the cost of the position.
func (p Position) Return() Percent { return ratio(p.GainLoss(), p.TotalCost()) }

func (p Position) String() string {
	return fmt.Sprintf("%s %s @ %s (market %s)", p.symbol, p.quantity, p.costBasis.Fixed(), p.marketPrice.Fixed())
}

// ratio returns a/b in percent, 0 when b is zero.
func ratio(a, b Money) Percent {
	if b.IsZero() {
		return 0
	}
	return a.Ratio(b)
}
