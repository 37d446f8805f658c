package renderer

import (
	"context"
	"strings"
	"testing"

	"github.com/etnz/stocktracker"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// table is a markdown table parsed back from the renderer's output.
type table struct {
	header []string
	rows   [][]string
}

// parseTables parses markdown 'src' and returns all its tables, and its headings.
func parseTables(t *testing.T, src string) (tables []table, headings []string) {
	t.Helper()
	source := []byte(src)
	parser := goldmark.New(goldmark.WithExtensions(extension.Table)).Parser()
	root := parser.Parse(text.NewReader(source))

	err := ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch v := n.(type) {
		case *ast.Heading:
			headings = append(headings, nodeText(v, source))
			return ast.WalkSkipChildren, nil
		case *east.Table:
			var tbl table
			for c := v.FirstChild(); c != nil; c = c.NextSibling() {
				var cells []string
				for cell := c.FirstChild(); cell != nil; cell = cell.NextSibling() {
					cells = append(cells, nodeText(cell, source))
				}
				switch c.(type) {
				case *east.TableHeader:
					tbl.header = cells
				case *east.TableRow:
					tbl.rows = append(tbl.rows, cells)
				}
			}
			tables = append(tables, tbl)
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		t.Fatalf("cannot walk markdown: %v", err)
	}
	return tables, headings
}

// nodeText concatenates the text segments below 'n'.
func nodeText(n ast.Node, source []byte) string {
	var b strings.Builder
	ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if t, ok := c.(*ast.Text); ok && entering {
			b.Write(t.Segment.Value(source))
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(b.String())
}

type fixedSource map[string]float64

func (f fixedSource) Open(context.Context, stocktracker.Epoch) (stocktracker.PriceSession, error) {
	return f, nil
}

func (f fixedSource) Price(_ context.Context, symbol string, ref stocktracker.Money) (stocktracker.Money, error) {
	if p, ok := f[symbol]; ok {
		return stocktracker.M(p, "USD"), nil
	}
	return ref, nil
}

func TestHoldingMarkdown(t *testing.T) {
	l := stocktracker.NewLedger(fixedSource{"AAPL": 150, "GOOG": 2600}, "USD")
	l.Add("AAPL", stocktracker.Q(10), stocktracker.M(130.0, "USD"))
	l.Add("GOOG", stocktracker.Q(2), stocktracker.M(2700.0, "USD"))
	l.Add("MSFT", stocktracker.Q(3), stocktracker.M(50.0, "USD"))
	if err := l.Refresh(context.Background()); err != nil {
		t.Fatal(err)
	}

	out := HoldingMarkdown(l.Snapshot())
	tables, headings := parseTables(t, out)

	if len(headings) != 1 || headings[0] != "Your Portfolio" {
		t.Errorf("headings = %q, want [Your Portfolio]", headings)
	}
	if len(tables) != 1 {
		t.Fatalf("got %d tables, want 1 in:\n%s", len(tables), out)
	}
	tbl := tables[0]
	wantHeader := []string{"Symbol", "Quantity", "Buy Price", "Current Price", "Total Value", "Gain/Loss", "Return"}
	if strings.Join(tbl.header, "|") != strings.Join(wantHeader, "|") {
		t.Errorf("header = %q, want %q", tbl.header, wantHeader)
	}

	wantRows := [][]string{
		{"AAPL", "10", "$130.00", "$150.00", "$1,500.00", "+$200.00", "+15.38%"},
		{"GOOG", "2", "$2,700.00", "$2,600.00", "$5,200.00", "-$200.00", "-3.70%"},
		{"MSFT", "3", "$50.00", "$50.00", "$150.00", "-", "-"},
		{"Total", "", "", "", "$6,850.00", "-", "-"},
	}
	if len(tbl.rows) != len(wantRows) {
		t.Fatalf("got %d rows, want %d in:\n%s", len(tbl.rows), len(wantRows), out)
	}
	for i, want := range wantRows {
		if got := strings.Join(tbl.rows[i], "|"); got != strings.Join(want, "|") {
			t.Errorf("row %d = %q, want %q", i, tbl.rows[i], want)
		}
	}
	// symbols align left, figures align right.
	if !strings.Contains(out, "|:--------|--------:|") {
		t.Errorf("columns are not aligned:\n%s", out)
	}
	if !strings.Contains(out, "refresh #1") {
		t.Errorf("output does not mention the refresh epoch:\n%s", out)
	}
}

func TestHoldingMarkdown_Empty(t *testing.T) {
	l := stocktracker.NewLedger(fixedSource{}, "USD")
	out := HoldingMarkdown(l.Snapshot())
	tables, _ := parseTables(t, out)
	if len(tables) != 0 {
		t.Errorf("got %d tables for an empty portfolio", len(tables))
	}
	if !strings.Contains(out, EmptyPortfolio) {
		t.Errorf("output = %q, want it to contain %q", out, EmptyPortfolio)
	}
}

func TestHoldingMarkdown_NotRefreshed(t *testing.T) {
	l := stocktracker.NewLedger(fixedSource{}, "USD")
	l.Add("AAPL", stocktracker.Q(1), stocktracker.M(10.0, "USD"))
	if out := HoldingMarkdown(l.Snapshot()); !strings.Contains(out, "not been refreshed") {
		t.Errorf("output does not warn about stale prices:\n%s", out)
	}
}
