package cmd

import (
	"flag"

	"github.com/etnz/fiplan/docs"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Completion describes the fip command line for shell completion.
//
// Flags are read from the subcommands themselves, boolean flags take no value.
func Completion() *complete.Command {
	root := &complete.Command{
		Sub: map[string]*complete.Command{},
		Flags: map[string]complete.Predictor{
			"config": predict.Files("*.toml"),
			"v":      predict.Nothing,
		},
	}
	for _, c := range Commands() {
		fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
		c.SetFlags(fs)
		sub := &complete.Command{Flags: map[string]complete.Predictor{}}
		fs.VisitAll(func(f *flag.Flag) {
			sub.Flags[f.Name] = predict.Something
			if b, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
				sub.Flags[f.Name] = predict.Nothing
			}
		})
		root.Sub[c.Name()] = sub
	}

	root.Sub["statements"].Flags["csv"] = predict.Set{"cashflow", "balance_sheet", "metrics"}
	root.Sub["export"].Flags["o"] = predict.Dirs("*")
	if topics, err := docs.All(); err == nil {
		root.Sub["topic"].Args = predict.Set(append(topics, docs.Readme))
	}
	for _, name := range []string{"help", "flags", "commands"} {
		root.Sub[name] = &complete.Command{}
	}
	return root
}
