package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type queryCmd struct{}

func (*queryCmd) Name() string     { return "query" }
func (*queryCmd) Synopsis() string { return "evaluate a JSONPath expression over the report" }
func (*queryCmd) Usage() string {
	return `fip query <jsonpath>

  Evaluates a JSONPath expression over the report: "statements", "history"
  and "projection". Tables have "rows" of monthly values.

Usage Examples:
# Total assets at the end of the projection.
$ fip query '$.projection.combined.rows[-1:].total_financial_assets'

# Net savings of every history month.
$ fip query '$.statements.cashflow[*].net_savings'

`
}

func (*queryCmd) SetFlags(f *flag.FlagSet) {}

func (c *queryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: query expects exactly one JSONPath expression")
		return subcommands.ExitUsageError
	}
	_, r, status := report()
	if status != subcommands.ExitSuccess {
		return status
	}
	v, err := r.Query(f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
