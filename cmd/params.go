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

type paramsCmd struct {
	csv bool
}

func (*paramsCmd) Name() string     { return "params" }
func (*paramsCmd) Synopsis() string { return "display the parameters derived by the forecasters" }
func (*paramsCmd) Usage() string {
	return `fip params [-csv]

  Displays, for every income and expense, the forecaster parameters derived
  from the history: growth rates, bonus amounts, coefficients of variation...

`
}

func (c *paramsCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.csv, "csv", false, "Print the parameters as CSV.")
}

func (c *paramsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	_, r, status := report()
	if status != subcommands.ExitSuccess {
		return status
	}
	if c.csv {
		if err := fiplan.EncodeParameters(os.Stdout, r.Projection.Parameters); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing parameters: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}
	printMarkdown(renderer.ParametersMarkdown(r.Projection.Parameters))
	return subcommands.ExitSuccess
}
