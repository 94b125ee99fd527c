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

type forecastCmd struct {
	csv bool
}

func (*forecastCmd) Name() string     { return "forecast" }
func (*forecastCmd) Synopsis() string { return "display the projection summarized by year" }
func (*forecastCmd) Usage() string {
	return `fip forecast [-csv]

  Projects incomes, expenses and assets over the configured horizon and
  displays a yearly summary. With -csv, prints every month of history and
  projection instead.

`
}

func (c *forecastCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.csv, "csv", false, "Print the monthly history and projection as CSV.")
}

func (c *forecastCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, r, status := report()
	if status != subcommands.ExitSuccess {
		return status
	}
	if c.csv {
		if err := fiplan.EncodeTable(os.Stdout, r.Projection.Combined); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing forecast: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}
	printMarkdown(renderer.ProjectionMarkdown(r.Projection, a.options()))
	return subcommands.ExitSuccess
}
