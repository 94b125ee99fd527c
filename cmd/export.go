package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/fiplan"
	"github.com/google/subcommands"
)

type exportCmd struct {
	output string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "write the statements and the projection as CSV files" }
func (*exportCmd) Usage() string {
	return `fip export [-o <dir>]

  Writes cashflow.csv, balance_sheet.csv, metrics.csv, normalized.csv,
  forecast.csv and forecast_parameters.csv into the output directory.

`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "", "Output directory. Defaults to the configured output_dir.")
}

func (c *exportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, r, status := report()
	if status != subcommands.ExitSuccess {
		return status
	}
	dir := c.output
	if dir == "" {
		dir = a.config.Output()
	}
	if err := fiplan.SaveReport(dir, r); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Successfully exported %d history and %d forecast months to %s\n",
		len(r.History.Rows), len(r.Projection.Forecast()), dir)
	return subcommands.ExitSuccess
}
