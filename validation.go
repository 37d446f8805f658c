package stocktracker

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidSymbol   = errors.New("invalid symbol")
	ErrInvalidQuantity = errors.New("quantity must be a positive whole number")
	ErrInvalidPrice    = errors.New("invalid price")
)

// NormalizeSymbol returns the canonical form of a ticker symbol: trimmed and
// upper-cased, so that "aapl" and " AAPL" designate the same position.
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// ValidateSymbol checks that 'symbol' is usable as a position key.
func ValidateSymbol(symbol string) error {
	s := NormalizeSymbol(symbol)
	if s == "" {
		return fmt.Errorf("%w: symbol is empty", ErrInvalidSymbol)
	}
	if strings.ContainsAny(s, " \t,\"") {
		return fmt.Errorf("%w: %q contains spaces, commas or quotes", ErrInvalidSymbol, s)
	}
	return nil
}

// ValidateAdd checks the arguments of a [Ledger.Add] call on a ledger in
// 'currency' and returns an error joining every failure. A price without
// currency is taken in the ledger's one.
//
// The ledger itself trusts its callers, so this must be called before Add.
func ValidateAdd(symbol string, quantity Quantity, price Money, currency string) error {
	var errs []error
	if err := ValidateSymbol(symbol); err != nil {
		errs = append(errs, err)
	}
	if !quantity.IsPositive() {
		errs = append(errs, fmt.Errorf("%w: got %s", ErrInvalidQuantity, quantity))
	}
	if !price.IsPositive() {
		errs = append(errs, fmt.Errorf("%w: must be positive, got %s", ErrInvalidPrice, price.Fixed()))
	}
	if price.cur != "" && price.cur != currency {
		errs = append(errs, fmt.Errorf("%w: price in %s, the portfolio is in %s", ErrInvalidPrice, price.cur, currency))
	}
	return errors.Join(errs...)
}
