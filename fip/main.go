// Command fip computes household statements and projections from monthly ledger files.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/fiplan/cmd"
	"github.com/google/subcommands"
)

func main() {
	cmd.Completion().Complete("fip")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	flag.Parse()

	if name := flag.Arg(0); name != "" && !cmd.Known(name) {
		if found, code := cmd.RunExtension(name, flag.Args()[1:], os.Stdin, os.Stdout, os.Stderr); found {
			os.Exit(code)
		}
	}
	os.Exit(int(commander.Execute(context.Background())))
}
