package cmd

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/etnz/stocktracker"
	"github.com/etnz/stocktracker/agent"
	"github.com/etnz/stocktracker/docs"
	"github.com/etnz/stocktracker/renderer"
	"github.com/google/subcommands"
	"google.golang.org/genai"
)

// shellCmd holds the flags for the 'shell' subcommand.
type shellCmd struct{}

func (*shellCmd) Name() string     { return "shell" }
func (*shellCmd) Synopsis() string { return "manage your portfolio from an interactive menu" }
func (*shellCmd) Usage() string {
	return `st [-currency <code>] [-reports-dir <dir>] [-quotes <file.json>] [-seed <n>] shell

  Starts the interactive menu to add, remove, view and export positions.
  This is the default command.

  The portfolio only lives as long as the shell: nothing is saved but exported reports.
`
}

func (c *shellCmd) SetFlags(f *flag.FlagSet) {}

func (c *shellCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	source, err := NewPriceSource()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	sh := NewShell(os.Stdin, os.Stdout, stocktracker.NewLedger(source, Currency()))
	sh.ReportsDir = ReportsDir()
	sh.Render = func(md string) { printMarkdown(os.Stdout, md) }
	if assistantConfigured() {
		sh.NewClient = func(ctx context.Context) (*genai.Client, error) { return genai.NewClient(ctx, nil) }
	}

	if err := sh.Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// assistantConfigured returns true if Gemini credentials are available.
func assistantConfigured() bool {
	return os.Getenv("GEMINI_API_KEY") != "" || os.Getenv("GOOGLE_API_KEY") != ""
}

// Shell is the interactive menu over a ledger.
type Shell struct {
	Ledger     *stocktracker.Ledger
	ReportsDir string
	// Now returns the time used to name reports.
	Now func() time.Time
	// Render prints markdown.
	Render func(string)
	// NewClient connects to Gemini, the assistant is disabled when nil.
	NewClient func(context.Context) (*genai.Client, error)

	in  *bufio.Reader
	out io.Writer
}

// NewShell returns a shell over 'ledger' reading user input from 'r' and printing to 'w'.
func NewShell(r io.Reader, w io.Writer, ledger *stocktracker.Ledger) *Shell {
	return &Shell{
		Ledger:     ledger,
		ReportsDir: defaultReportsDir,
		Now:        time.Now,
		Render:     func(md string) { fmt.Fprintln(w, md) },
		in:         bufio.NewReader(r),
		out:        w,
	}
}

// errCancelled is returned by prompts when the user enters nothing.
var errCancelled = errors.New("cancelled")

// readLine reads the next line of input, without the line feed. It returns
// io.EOF when the input is over.
func (s *Shell) readLine() (string, error) {
	line, err := s.in.ReadString('\n')
	if err == io.EOF && line != "" {
		err = nil
	}
	return strings.TrimSpace(line), err
}

// prompt asks for a value until 'parse' accepts it. An empty answer cancels.
func prompt[T any](s *Shell, label string, parse func(string) (T, error)) (T, error) {
	for {
		fmt.Fprint(s.out, label)
		line, err := s.readLine()
		if err != nil {
			var zero T
			return zero, err
		}
		if line == "" {
			var zero T
			return zero, errCancelled
		}
		v, err := parse(line)
		if err == nil {
			return v, nil
		}
		fmt.Fprintf(s.out, "Invalid input: %v. Please try again.\n", err)
	}
}

func (s *Shell) printMenu() {
	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, "--- Main Menu ---")
	fmt.Fprintln(s.out, "1. Add a stock to your portfolio")
	fmt.Fprintln(s.out, "2. Remove a stock from your portfolio")
	fmt.Fprintln(s.out, "3. View your portfolio")
	fmt.Fprintln(s.out, "4. Export portfolio to CSV")
	fmt.Fprintln(s.out, "5. Exit")
	if s.NewClient != nil {
		fmt.Fprintln(s.out, "6. Ask the assistant about your portfolio")
	}
}

// Run runs the menu until the user exits or the input is over.
func (s *Shell) Run(ctx context.Context) error {
	fmt.Fprintln(s.out, "Welcome to the Stock Portfolio Tracker!")
	defer fmt.Fprintln(s.out, "Thank you for using the Stock Portfolio Tracker!")

	for {
		s.printMenu()
		fmt.Fprint(s.out, "Choose an option: ")
		choice, err := s.readLine()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("cannot read input: %w", err)
		}

		switch choice {
		case "":
		case "1":
			err = s.add()
		case "2":
			err = s.remove()
		case "3":
			s.view(ctx)
		case "4":
			s.export(ctx)
		case "5":
			return nil
		case "6":
			if s.NewClient == nil {
				fmt.Fprintln(s.out, "Invalid option. Please try again.")
				continue
			}
			s.assist(ctx)
		case "help", "?":
			s.help()
		default:
			if !isNumber(choice) {
				fmt.Fprintln(s.out, "Invalid input. Please enter a number.")
				continue
			}
			fmt.Fprintln(s.out, "Invalid option. Please try again.")
		}

		switch {
		case errors.Is(err, io.EOF):
			return nil
		case errors.Is(err, errCancelled):
			fmt.Fprintln(s.out, "Cancelled.")
		case err != nil:
			return fmt.Errorf("cannot read input: %w", err)
		}
	}
}

func isNumber(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

func parseSymbol(s string) (string, error) {
	if err := stocktracker.ValidateSymbol(s); err != nil {
		return "", err
	}
	return stocktracker.NormalizeSymbol(s), nil
}

func (s *Shell) add() error {
	symbol, err := prompt(s, "Enter stock symbol (e.g., AAPL): ", parseSymbol)
	if err != nil {
		return err
	}
	quantity, err := prompt(s, "Enter quantity: ", stocktracker.ParseQuantity)
	if err != nil {
		return err
	}
	price, err := prompt(s, "Enter buy price per share: ", func(v string) (stocktracker.Money, error) {
		return stocktracker.ParsePrice(v, s.Ledger.Currency())
	})
	if err != nil {
		return err
	}

	if err := stocktracker.ValidateAdd(symbol, quantity, price, s.Ledger.Currency()); err != nil {
		fmt.Fprintf(s.out, "Cannot add %s: %v\n", symbol, err)
		return nil
	}
	s.Ledger.Add(symbol, quantity, price)
	fmt.Fprintf(s.out, "Stock %s added successfully.\n", symbol)
	return nil
}

func (s *Shell) remove() error {
	fmt.Fprint(s.out, "Enter stock symbol to remove: ")
	line, err := s.readLine()
	if err != nil {
		return err
	}
	symbol := stocktracker.NormalizeSymbol(line)
	if symbol == "" {
		return errCancelled
	}
	if s.Ledger.Remove(symbol) {
		fmt.Fprintf(s.out, "Stock %s removed successfully.\n", symbol)
	} else {
		fmt.Fprintf(s.out, "Stock %s not found in portfolio.\n", symbol)
	}
	return nil
}

// refresh updates prices and returns the resulting snapshot. Price failures
// are reported, the positions concerned keep their previous price.
func (s *Shell) refresh(ctx context.Context) *stocktracker.Snapshot {
	snap, err := s.Ledger.RefreshSnapshot(ctx)
	if err != nil {
		fmt.Fprintf(s.out, "Warning: some prices could not be refreshed: %v\n", err)
	}
	return snap
}

func (s *Shell) view(ctx context.Context) {
	if s.Ledger.Len() == 0 {
		fmt.Fprintln(s.out, renderer.EmptyPortfolio)
		return
	}
	s.Render(renderer.HoldingMarkdown(s.refresh(ctx)))
}

func (s *Shell) export(ctx context.Context) {
	if s.Ledger.Len() == 0 {
		fmt.Fprintln(s.out, "Portfolio is empty. Nothing to export.")
		return
	}
	path, err := stocktracker.ExportReport(s.ReportsDir, s.refresh(ctx), s.Now())
	if err != nil {
		fmt.Fprintf(s.out, "Error exporting portfolio to CSV: %v\n", err)
		return
	}
	fmt.Fprintf(s.out, "Portfolio successfully exported to %s\n", path)
}

func (s *Shell) help() {
	doc, err := docs.GetTopic("shell")
	if err != nil {
		fmt.Fprintf(s.out, "Error reading doc: %v\n", err)
		return
	}
	s.Render(doc)
}

// assist runs an assistant session. The holdings are refreshed once so that
// the whole conversation is about the same prices.
func (s *Shell) assist(ctx context.Context) {
	client, err := s.NewClient(ctx)
	if err != nil {
		fmt.Fprintf(s.out, "Error initializing Gemini's client: %v\n", err)
		return
	}
	holdings := renderer.HoldingMarkdown(s.refresh(ctx))
	analyst := agent.NewAnalyst(func(context.Context) (string, error) { return holdings, nil })

	a := agent.New(s.out, s.in, analyst, agent.NewTrader())
	if err := a.Run(ctx, client, s.Render); err != nil {
		fmt.Fprintf(s.out, "Assistant failed: %v\n", err)
	}
}
