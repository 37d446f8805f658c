package stocktracker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"
)

// DefaultQuotePath is the JSONPath template used by QuoteFile when none is
// given: the document is an object mapping symbols to prices.
const DefaultQuotePath = `$["%s"]`

// QuoteFile is a PriceSource that reads prices from a local JSON document.
//
// The file is read again each time a session is opened, so that editing it
// between two refreshes is visible. Each symbol's price is extracted with a
// JSONPath built from Path, where "%s" stands for the symbol, for instance
//
//	{"quotes": {"AAPL": {"last": 182.5}}}
//
// with the path `$.quotes.%s.last`.
//
// Prices can be numbers or strings, with either '.' or ',' as the decimal
// separator.
type QuoteFile struct {
	Name     string // path to the JSON file
	Path     string // JSONPath template, DefaultQuotePath if empty
	Currency string
}

// Open reads the quote file.
func (q *QuoteFile) Open(_ context.Context, epoch Epoch) (PriceSession, error) {
	content, err := os.ReadFile(q.Name)
	if err != nil {
		return nil, fmt.Errorf("cannot read quote file: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(content))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("cannot parse quote file %q: %w", q.Name, err)
	}
	log.Printf("epoch %d: read quotes from %q", epoch, q.Name)

	path := q.Path
	if path == "" {
		path = DefaultQuotePath
	}
	return &quoteSession{doc: doc, path: path, cur: q.Currency, memo: newMemo()}, nil
}

type quoteSession struct {
	doc  any
	path string
	cur  string
	memo *memo
}

func (s *quoteSession) Price(_ context.Context, symbol string, _ Money) (Money, error) {
	symbol = NormalizeSymbol(symbol)
	return s.memo.price(symbol, func() (Money, error) {
		path := strings.ReplaceAll(s.path, "%s", symbol)
		jval, err := jsonpath.Get(path, s.doc)
		if err != nil {
			return Money{}, fmt.Errorf("%w for %s: %q: %v", ErrNoQuote, symbol, path, err)
		}
		// jsonpath returns a list for wildcard and filter paths: keep the first answer.
		if jlist, ok := jval.([]any); ok {
			if len(jlist) == 0 {
				return Money{}, fmt.Errorf("%w for %s: %q matches nothing", ErrNoQuote, symbol, path)
			}
			jval = jlist[0]
		}
		d, err := quoteValue(jval)
		if err != nil {
			return Money{}, fmt.Errorf("invalid quote for %s at %q: %w", symbol, path, err)
		}
		if d.IsNegative() {
			return Money{}, fmt.Errorf("invalid quote for %s at %q: negative price %s", symbol, path, d)
		}
		return M(d, s.cur), nil
	})
}

// quoteValue converts a JSON value into a price.
func quoteValue(jval any) (decimal.Decimal, error) {
	switch v := jval.(type) {
	case json.Number:
		return decimal.NewFromString(v.String())
	case float64:
		return decimal.NewFromFloat(v), nil
	case string:
		// some feeds write prices as "1 234,50"
		v = strings.ReplaceAll(v, ",", ".")
		v = strings.ReplaceAll(v, " ", "")
		return decimal.NewFromString(v)
	default:
		return decimal.Decimal{}, fmt.Errorf("not a number: %v (%T)", jval, jval)
	}
}
