package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/stocktracker"
	md "github.com/nao1215/markdown"
)

// EmptyPortfolio is the text rendered for a portfolio without positions.
const EmptyPortfolio = "Your portfolio is empty."

// HoldingMarkdown renders the positions of a snapshot as a markdown table,
// followed by a total row.
func HoldingMarkdown(s *stocktracker.Snapshot) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H2("Your Portfolio")
	if s.IsEmpty() {
		doc.PlainText(EmptyPortfolio)
		return doc.String()
	}

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Symbol", "Quantity", "Buy Price", "Current Price", "Total Value", "Gain/Loss", "Return"},
	}
	for p := range s.All() {
		table.Rows = append(table.Rows, []string{
			p.Symbol(),
			p.Quantity().String(),
			p.CostBasis().String(),
			p.MarketPrice().String(),
			p.TotalValue().String(),
			p.GainLoss().SignedString(),
			p.Return().SignedString(),
		})
	}
	table.Rows = append(table.Rows, []string{
		md.Bold("Total"),
		"",
		"",
		"",
		md.Bold(s.TotalValue().String()),
		md.Bold(s.TotalGainLoss().SignedString()),
		md.Bold(s.TotalReturn().SignedString()),
	})
	doc.Table(table)

	if s.Epoch() == 0 {
		doc.PlainText("Prices have not been refreshed yet, positions are valued at cost.")
	} else {
		doc.PlainText(fmt.Sprintf("Prices from refresh #%d.", s.Epoch()))
	}
	return doc.String()
}
