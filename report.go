package stocktracker

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

// this file contains the CSV report format. It is meant to be opened in a
// spreadsheet, not to be read back as a ledger.

// reportHeader is the first row of every CSV report.
var reportHeader = []string{"Symbol", "Quantity", "BuyPrice", "CurrentPrice", "TotalValue", "GainLoss"}

// ReportRow is a row of a CSV report, as read back by ReadCSV.
type ReportRow struct {
	Symbol       string
	Quantity     Quantity
	BuyPrice     Money
	CurrentPrice Money
	TotalValue   Money
	GainLoss     Money
}

// WriteCSV writes the positions of 's' to 'w' as CSV: a header row, then one
// row per position with money amounts written with two decimals.
func WriteCSV(w io.Writer, s *Snapshot) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(reportHeader); err != nil {
		return fmt.Errorf("cannot write report header: %w", err)
	}
	for p := range s.All() {
		row := []string{
			p.Symbol(),
			p.Quantity().String(),
			p.CostBasis().Fixed(),
			p.MarketPrice().Fixed(),
			p.TotalValue().Fixed(),
			p.GainLoss().Fixed(),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("cannot write report row for %s: %w", p.Symbol(), err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("cannot write report: %w", err)
	}
	return nil
}

// ReadCSV reads a report written by WriteCSV. Amounts have no currency.
func ReadCSV(r io.Reader) ([]ReportRow, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(reportHeader)
	header, err := cr.Read()
	if err == io.EOF {
		return nil, errors.New("empty report: missing header")
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read report header: %w", err)
	}
	if !slices.Equal(header, reportHeader) {
		return nil, fmt.Errorf("unexpected report header %q", header)
	}

	var rows []ReportRow
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("cannot read report: %w", err)
		}
		row, err := parseReportRow(record)
		if err != nil {
			line, _ := cr.FieldPos(0)
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func parseReportRow(record []string) (ReportRow, error) {
	row := ReportRow{Symbol: record[0]}
	var err error
	if row.Quantity, err = ParseQuantity(record[1]); err != nil {
		return row, err
	}
	amounts := []*Money{&row.BuyPrice, &row.CurrentPrice, &row.TotalValue, &row.GainLoss}
	for i, m := range amounts {
		field := record[i+2]
		d, err := decimal.NewFromString(field)
		if err != nil {
			return row, fmt.Errorf("invalid %s %q: %w", reportHeader[i+2], field, err)
		}
		*m = M(d, "")
	}
	return row, nil
}

// ReportName returns the file name of a report exported at 'at'.
func ReportName(at time.Time) string {
	return "portfolio_summary_" + at.Format("20060102_150405") + ".csv"
}

// ExportReport writes 's' as a CSV report in directory 'dir', creating it if
// needed, and returns the path of the new file.
//
// On failure the file may have been partially written, the error says so.
func ExportReport(dir string, s *Snapshot, at time.Time) (path string, err error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("cannot create report directory: %w", err)
	}
	path = filepath.Join(dir, ReportName(at))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("cannot create report: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("cannot close report %q: %w", path, cerr)
		}
	}()

	if err := WriteCSV(f, s); err != nil {
		return path, fmt.Errorf("report %q is incomplete: %w", path, err)
	}
	return path, nil
}
