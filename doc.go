// Package stocktracker tracks the equity holdings of a single investor and
// values them against a market price source.
//
// The core functionalities include:
//   - Ledger Management: one aggregate Position per symbol, opened by a first
//     purchase, merged on later ones using a weighted-average cost basis, and
//     closed as a whole.
//   - Valuation: a Refresh values every position against a PriceSource within a
//     single epoch, so that a view of the portfolio is internally consistent.
//   - Snapshots: immutable, ordered copies of the positions with derived metrics
//     (market value, gain or loss, return).
//   - Reports: CSV export of a snapshot.
//
// This package serves as the foundational logic for the `st` command-line
// tool.
package stocktracker
