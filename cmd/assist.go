package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/fiplan/agent"
	"github.com/google/subcommands"
	"google.golang.org/genai"
)

// AssistCmd is the subcommand for the AI assistant.
type AssistCmd struct{}

// Name returns the name of the command.
func (*AssistCmd) Name() string { return "assist" }

// Synopsis returns a short-one line synopsis of the command.
func (*AssistCmd) Synopsis() string { return "start an interactive session with the AI assistant" }

// Usage returns a long-form usage string.
func (*AssistCmd) Usage() string {
	return `fip assist [<question>]

  Starts an interactive session with the AI assistant about your statements
  and projection. Requires GOOGLE_API_KEY (or GEMINI_API_KEY) in the environment.

`
}

// SetFlags sets the flags for the command.
func (*AssistCmd) SetFlags(_ *flag.FlagSet) {}

// Execute executes the command.
func (c *AssistCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	var prompts []string
	if f.NArg() > 0 {
		prompts = append(prompts, strings.Join(f.Args(), " "))
	}

	a, r, status := report()
	if status != subcommands.ExitSuccess {
		return status
	}

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error initializing Gemini's client:", err)
		return subcommands.ExitFailure
	}

	assistant := agent.New(os.Stdout, os.Stdin, agent.NewPlanner(r, a.options()), agent.NewEconomist())
	assistant.Render = renderMarkdown
	if err := assistant.Run(ctx, client, prompts...); err != nil {
		fmt.Fprintln(os.Stderr, "Agent failed:", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
