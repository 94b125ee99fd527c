// Package cmd implements the fip command line application.
package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/fiplan"
	"github.com/etnz/fiplan/config"
	"github.com/etnz/fiplan/renderer"
	"github.com/google/subcommands"
	"go.uber.org/zap"
)

// Commands returns the fip subcommands.
func Commands() []subcommands.Command {
	return []subcommands.Command{
		&statementsCmd{},
		&forecastCmd{},
		&paramsCmd{},
		&exportCmd{},
		&queryCmd{},
		&AssistCmd{},
		&topicCmd{},
	}
}

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	for _, cmd := range Commands() {
		group := "reports"
		switch cmd.Name() {
		case "export", "query":
			group = "data"
		case "assist", "topic":
			group = "help"
		}
		c.Register(cmd, group)
	}
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configFile = flag.String("config", os.Getenv(EnvConfig), "Path to the configuration file, "+config.DefaultFile+" in the current directory by default")
var Verbose = flag.Bool("v", os.Getenv(EnvVerbose) == "true", "Verbose logging to stderr")

// newLogger returns a development logger when verbose, or a production logger reporting warnings only.
func newLogger() *zap.Logger {
	if *Verbose {
		logger, err := zap.NewDevelopment()
		if err == nil {
			return logger
		}
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

// app is what a subcommand needs to compute a report.
type app struct {
	config *config.Config
	logger *zap.Logger
}

// loadApp reads the configuration and creates the logger.
func loadApp() (*app, error) {
	c, err := config.Load(*configFile)
	if err != nil {
		return nil, err
	}
	logger := newLogger()
	if c.File() != "" {
		logger.Debug("configuration", zap.String("file", c.File()))
	}
	return &app{config: c, logger: logger}, nil
}

// options returns the rendering options of the configuration.
func (a *app) options() renderer.Options { return renderer.Options{Currency: a.config.Currency} }

// run loads the master tables and the ledger, then computes the report.
func (a *app) run() (*fiplan.Report, error) {
	defer a.logger.Sync()
	master, err := fiplan.LoadMaster(a.config.Input())
	if err != nil {
		return nil, err
	}
	ledger, err := fiplan.LoadLedger(a.config.Input())
	if err != nil {
		return nil, err
	}
	if ledger.IsEmpty() {
		return nil, fmt.Errorf("no input found in %q", a.config.Input())
	}
	return fiplan.NewEngine(master, a.config.Plan, a.logger).Run(ledger)
}

// report is the common path of reporting subcommands: load, compute or print the error.
func report() (*app, *fiplan.Report, subcommands.ExitStatus) {
	a, err := loadApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return nil, nil, subcommands.ExitUsageError
	}
	r, err := a.run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return nil, nil, subcommands.ExitFailure
	}
	return a, r, subcommands.ExitSuccess
}

// renderMarkdown formats markdown for the terminal, or returns it as is on failure.
func renderMarkdown(md string) string {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return out
}

// printMarkdown prints markdown to stdout, formatted for the terminal.
func printMarkdown(md string) { fmt.Print(renderMarkdown(md)) }
