package stocktracker

import (
	"errors"
	"testing"
)

func TestMoney_String(t *testing.T) {
	testCases := []struct {
		m          Money
		want       string
		wantSigned string
		wantFixed  string
	}{
		{M(1234.56, "USD"), "$1,234.56", "+$1,234.56", "1234.56"},
		{M(-200, "USD"), "-$200.00", "-$200.00", "-200.00"},
		{M(0, "USD"), "$0.00", "-", "0.00"},
		{M(2.345, "USD"), "$2.35", "+$2.35", "2.35"},
		{M(0.001, "USD"), "$0.00", "-", "0.00"},
	}
	for _, tc := range testCases {
		if got := tc.m.String(); got != tc.want {
			t.Errorf("String() = %q, want %q", got, tc.want)
		}
		if got := tc.m.SignedString(); got != tc.wantSigned {
			t.Errorf("SignedString() = %q, want %q", got, tc.wantSigned)
		}
		if got := tc.m.Fixed(); got != tc.wantFixed {
			t.Errorf("Fixed() = %q, want %q", got, tc.wantFixed)
		}
	}
}

func TestParseQuantity(t *testing.T) {
	testCases := []struct {
		in      string
		want    Quantity
		wantErr bool
	}{
		{in: "10", want: Q(10)},
		{in: "1000000", want: Q(1000000)},
		{in: "0", wantErr: true},
		{in: "-3", wantErr: true},
		{in: "2.5", wantErr: true},
		{in: "ten", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tc := range testCases {
		got, err := ParseQuantity(tc.in)
		if tc.wantErr {
			if !errors.Is(err, ErrInvalidQuantity) {
				t.Errorf("ParseQuantity(%q) error = %v, want ErrInvalidQuantity", tc.in, err)
			}
			continue
		}
		if err != nil || !got.Equal(tc.want) {
			t.Errorf("ParseQuantity(%q) = %v, %v, want %v", tc.in, got, err, tc.want)
		}
	}
}

func TestParsePrice(t *testing.T) {
	testCases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "100", want: "100.00"},
		{in: "182.525", want: "182.53"},
		{in: "0.01", want: "0.01"},
		{in: "0", wantErr: true},
		{in: "-1.5", wantErr: true},
		{in: "1,5", wantErr: true},
	}
	for _, tc := range testCases {
		got, err := ParsePrice(tc.in, "USD")
		if tc.wantErr {
			if !errors.Is(err, ErrInvalidPrice) {
				t.Errorf("ParsePrice(%q) error = %v, want ErrInvalidPrice", tc.in, err)
			}
			continue
		}
		if err != nil || got.Fixed() != tc.want || got.Currency() != "USD" {
			t.Errorf("ParsePrice(%q) = %s, %v, want %s", tc.in, got.Fixed(), err, tc.want)
		}
	}
}

func TestValidateAdd(t *testing.T) {
	testCases := []struct {
		name     string
		symbol   string
		quantity Quantity
		price    Money
		wantErrs []error
	}{
		{name: "valid", symbol: "aapl", quantity: Q(1), price: M(1, "USD")},
		{name: "empty symbol", symbol: "  ", quantity: Q(1), price: M(1, "USD"), wantErrs: []error{ErrInvalidSymbol}},
		{name: "comma in symbol", symbol: "A,B", quantity: Q(1), price: M(1, "USD"), wantErrs: []error{ErrInvalidSymbol}},
		{name: "zero quantity", symbol: "AAPL", quantity: Q(0), price: M(1, "USD"), wantErrs: []error{ErrInvalidQuantity}},
		{name: "everything wrong", symbol: "", quantity: Q(-1), price: M(-1, "USD"), wantErrs: []error{ErrInvalidSymbol, ErrInvalidQuantity, ErrInvalidPrice}},
		{name: "other currency", symbol: "AAPL", quantity: Q(1), price: M(1, "EUR"), wantErrs: []error{ErrInvalidPrice}},
		{name: "no currency", symbol: "AAPL", quantity: Q(1), price: M(1, "")},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateAdd(tc.symbol, tc.quantity, tc.price, "USD")
			if len(tc.wantErrs) == 0 && err != nil {
				t.Fatalf("ValidateAdd() error = %v", err)
			}
			for _, want := range tc.wantErrs {
				if !errors.Is(err, want) {
					t.Errorf("ValidateAdd() error = %v, want %v", err, want)
				}
			}
		})
	}
}

func TestPercent_SignedString(t *testing.T) {
	for p, want := range map[Percent]string{15.384: "+15.38%", -2: "-2.00%", 0.001: "-", -0.001: "-"} {
		if got := p.SignedString(); got != want {
			t.Errorf("Percent(%v).SignedString() = %q, want %q", float64(p), got, want)
		}
	}
}
