// Package demo holds the walkthrough scenarios shared by the examples
// command and examples/basic.
package demo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	errorskg "github.com/sanketbagad/agent-botbyte/errors"
	"github.com/sanketbagad/agent-botbyte/prompt"
	"github.com/sanketbagad/agent-botbyte/session"
)

// Factory builds a fresh session. An empty systemPrompt keeps the default.
type Factory func(systemPrompt string) (*session.Session, error)

// Scenario is one titled walkthrough
type Scenario struct {
	Title string
	Run   func(ctx context.Context, w io.Writer, newSession Factory) error
}

var rule = strings.Repeat("=", 60)

// Scenarios returns the walkthroughs in presentation order
func Scenarios() []Scenario {
	return []Scenario{
		{Title: "Example 1: Basic Chat", Run: basicChat},
		{Title: "Example 2: Custom System Prompt", Run: customSystemPrompt},
		{Title: "Example 3: Multi-turn Conversation", Run: multiTurn},
		{Title: "Example 4: Streaming Response", Run: streaming},
	}
}

// Run plays every scenario. Scenarios that cannot get a session because
// no API key is configured print keyHint and are skipped.
func Run(ctx context.Context, w io.Writer, newSession Factory, keyHint string) error {
	fmt.Fprintln(w, "Botbyte AI Agent - Example Usage")
	fmt.Fprintln(w, keyHint)

	for _, sc := range Scenarios() {
		fmt.Fprintf(w, "\n%s\n%s\n%s\n", rule, sc.Title, rule)
		err := sc.Run(ctx, w, newSession)
		if errors.Is(err, errorskg.ErrMissingAPIKey) {
			fmt.Fprintln(w, keyHint)
			continue
		}
		if err != nil {
			return fmt.Errorf("%s: %w", sc.Title, err)
		}
	}

	fmt.Fprintf(w, "\n%s\nExamples completed!\n%s\n", rule, rule)
	return nil
}

func basicChat(ctx context.Context, w io.Writer, newSession Factory) error {
	s, err := newSession("")
	if err != nil {
		return err
	}
	const question = "What is artificial intelligence?"
	reply := s.Send(ctx, question)
	fmt.Fprintf(w, "\nUser: %s\nAgent: %s\n", question, reply)
	return nil
}

func customSystemPrompt(ctx context.Context, w io.Writer, newSession Factory) error {
	pirate, err := prompt.Builtin().Render(prompt.PersonaPirate, "")
	if err != nil {
		return err
	}
	s, err := newSession(pirate)
	if err != nil {
		return err
	}
	const question = "Tell me about the weather."
	reply := s.Send(ctx, question)
	fmt.Fprintf(w, "\nUser: %s\nPirate Agent: %s\n", question, reply)
	return nil
}

func multiTurn(ctx context.Context, w io.Writer, newSession Factory) error {
	s, err := newSession("")
	if err != nil {
		return err
	}
	for _, question := range []string{"My name is Alice.", "What is my name?"} {
		reply := s.Send(ctx, question)
		fmt.Fprintf(w, "\nUser: %s\nAgent: %s\n", question, reply)
	}
	fmt.Fprintf(w, "\n%s\n", s.Summarize())
	return nil
}

func streaming(ctx context.Context, w io.Writer, newSession Factory) error {
	s, err := newSession("")
	if err != nil {
		return err
	}
	const question = "Tell me a short story about a robot."
	fmt.Fprintf(w, "\nUser: %s\nAgent: ", question)
	var streamed strings.Builder
	reply := s.SendStream(ctx, question, func(fragment string) {
		streamed.WriteString(fragment)
		io.WriteString(w, fragment)
	})
	// a failure text is returned, never streamed
	if reply != streamed.String() {
		if streamed.Len() > 0 {
			fmt.Fprintln(w)
		}
		io.WriteString(w, reply)
	}
	fmt.Fprintln(w)
	return nil
}
