package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/fiplan"
	"github.com/etnz/fiplan/renderer"
	"github.com/google/subcommands"
)

type statementsCmd struct {
	last int
	csv  string
}

func (*statementsCmd) Name() string     { return "statements" }
func (*statementsCmd) Synopsis() string { return "display the cash flow, balance sheet and metrics of the history" }
func (*statementsCmd) Usage() string {
	return `fip statements [-last <n>] [-csv cashflow|balance_sheet|metrics]

  Displays the statements computed from the input files.

Usage Examples:
# The last year of statements.
$ fip statements -last 12

# The balance sheet as CSV.
$ fip statements -csv balance_sheet

`
}

func (c *statementsCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.last, "last", 0, "Only display the last n months. All months by default.")
	f.StringVar(&c.csv, "csv", "", "Print one statement as CSV instead: cashflow, balance_sheet or metrics.")
}

func (c *statementsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.last < 0 {
		fmt.Fprintf(os.Stderr, "Error: -last must be positive, got %d\n", c.last)
		return subcommands.ExitUsageError
	}
	a, r, status := report()
	if status != subcommands.ExitSuccess {
		return status
	}
	st := r.Statements

	var err error
	switch c.csv {
	case "":
		opts := a.options()
		opts.Last = c.last
		printMarkdown(renderer.StatementsMarkdown(st, opts))
		return subcommands.ExitSuccess
	case "cashflow":
		err = fiplan.EncodeCashFlows(os.Stdout, st.CashFlows)
	case "balance_sheet":
		err = fiplan.EncodeBalanceSheets(os.Stdout, st.BalanceSheets)
	case "metrics":
		err = fiplan.EncodeMetrics(os.Stdout, st.Metrics)
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown statement %q\n", c.csv)
		return subcommands.ExitUsageError
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", c.csv, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
