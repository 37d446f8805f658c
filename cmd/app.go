// Package cmd implements the CLI application to manage a stock portfolio.
package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/etnz/stocktracker"
	"github.com/google/subcommands"
)

// Commands lists the subcommands, a main package registers them in its commander.
var Commands = []subcommands.Command{
	&shellCmd{},
	&topicCmd{},
}

const (
	EnvCurrency   = "ST_CURRENCY"
	EnvReportsDir = "ST_REPORTS_DIR"
	EnvQuotesFile = "ST_QUOTES_FILE"
)

const (
	defaultCurrency   = "USD"
	defaultReportsDir = "generated_reports"
)

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	currency   = flag.String("currency", "", "Currency of the portfolio. Defaults to $"+EnvCurrency+" or "+defaultCurrency+".")
	reportsDir = flag.String("reports-dir", "", "Directory where reports are exported. Defaults to $"+EnvReportsDir+" or "+defaultReportsDir+".")
	quotesFile = flag.String("quotes", "", "JSON file to read prices from, instead of simulating them. Defaults to $"+EnvQuotesFile+".")
	quotesPath = flag.String("quotes-path", stocktracker.DefaultQuotePath, "JSONPath selecting the price of a symbol in the quotes file, %s stands for the symbol.")
	seed       = flag.Uint64("seed", 0, "Seed of the simulated prices, 0 picks a random one.")
	plain      = flag.Bool("plain", false, "Print raw markdown instead of rendering it for the terminal.")
	Verbose    = flag.Bool("v", false, "Print logs to stderr.")
)

// orEnv returns 'value' if set, or the environment variable 'env' if set, or 'def'.
func orEnv(value, env, def string) string {
	if value != "" {
		return value
	}
	if v := os.Getenv(env); v != "" {
		return v
	}
	return def
}

// Currency returns the currency of the portfolio.
func Currency() string { return orEnv(*currency, EnvCurrency, defaultCurrency) }

// ReportsDir returns the directory where reports are exported.
func ReportsDir() string { return orEnv(*reportsDir, EnvReportsDir, defaultReportsDir) }

// NewPriceSource returns the price source selected by the flags: a quote file
// when one is configured, the simulator otherwise.
func NewPriceSource() (stocktracker.PriceSource, error) {
	if name := orEnv(*quotesFile, EnvQuotesFile, ""); name != "" {
		if _, err := os.Stat(name); err != nil {
			return nil, fmt.Errorf("invalid quotes file: %w", err)
		}
		return &stocktracker.QuoteFile{Name: name, Path: *quotesPath, Currency: Currency()}, nil
	}
	return stocktracker.NewSimulator(*seed), nil
}
