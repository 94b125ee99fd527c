// Package agent implements fip assist: a chat session where a facilitator
// model answers questions about the household plan by asking experts.
package agent

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"google.golang.org/genai"
)

// Agent is the AI assistant that handles the chat session.
type Agent struct {
	w           io.Writer
	r           *bufio.Reader
	Facilitator *Expert
	Experts     []*Expert
	// Render formats the markdown answers before printing, they are printed as is when nil.
	Render func(string) string
}

// New creates a new Agent reading questions from r and writing answers to w.
func New(w io.Writer, r io.Reader, experts ...*Expert) *Agent {
	return &Agent{
		w:           w,
		r:           bufio.NewReader(r),
		Experts:     experts,
		Facilitator: newFacilitator(experts...),
	}
}

// Start creates the chats of every expert and of the facilitator.
func (a *Agent) Start(ctx context.Context, client *genai.Client) error {
	for _, e := range a.Experts {
		if err := e.Start(ctx, client); err != nil {
			return fmt.Errorf("could not start %s: %w", e.Name, err)
		}
	}
	if err := a.Facilitator.Start(ctx, client); err != nil {
		return fmt.Errorf("could not start %s: %w", a.Facilitator.Name, err)
	}
	return nil
}

const prompt = "assist> "

// Run starts the interactive session. prompts are asked first, as if typed by the user.
func (a *Agent) Run(ctx context.Context, client *genai.Client, prompts ...string) error {
	if a.Facilitator.chat == nil {
		if err := a.Start(ctx, client); err != nil {
			return err
		}
	}

	fmt.Fprintln(a.w, "Welcome to fip assist. Type 'bye' to exit.")
	for {
		fmt.Fprint(a.w, prompt)
		var input string
		if len(prompts) > 0 {
			input, prompts = strings.TrimSpace(prompts[0]), prompts[1:]
			if input == "" {
				continue
			}
			fmt.Fprintln(a.w, input)
		} else {
			var err error
			input, err = a.r.ReadString('\n')
			if err == io.EOF {
				return nil // Ctrl+D
			}
			if err != nil {
				return err
			}
		}

		if strings.TrimSpace(input) == "bye" {
			return nil
		}

		content, err := a.Facilitator.Ask(ctx, &genai.Part{Text: input})
		if err != nil {
			return err
		}
		answer := text(content)
		if a.Render != nil {
			answer = a.Render(answer)
		}
		fmt.Fprintln(a.w, answer)
	}
}

// text concatenates the text parts of a content.
func text(c *genai.Content) string {
	var b strings.Builder
	for _, p := range c.Parts {
		b.WriteString(p.Text)
	}
	return b.String()
}
