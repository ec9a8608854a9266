// Package repl runs the interactive chat loop on top of a session.
package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/sanketbagad/agent-botbyte/prompt"
	"github.com/sanketbagad/agent-botbyte/session"
)

// Keywords recognised at the prompt, compared case-insensitively
const (
	KeywordQuit    = "quit"
	KeywordExit    = "exit"
	KeywordClear   = "clear"
	KeywordHistory = "history"
	KeywordTokens  = "tokens"
)

const (
	bannerWidth    = 60
	clearedNotice  = "[Conversation history cleared]"
	goodbyeMessage = "Thank you for using Botbyte AI Agent. Goodbye!"
	interruptedMsg = "Interrupted. Goodbye!"
)

// Conversation is the part of a session the loop drives
type Conversation interface {
	Send(ctx context.Context, input string) string
	SendStream(ctx context.Context, input string, sink session.Sink) string
	Clear()
	Summarize() string
	TokenCount() int
}

// REPL reads user lines, forwards them to the conversation and prints replies
type REPL struct {
	conv          Conversation
	in            io.Reader
	out           io.Writer
	stream        bool
	assistantName string
	styled        bool

	userLabel lipgloss.Style
	botLabel  lipgloss.Style
	notice    lipgloss.Style
	title     lipgloss.Style
}

// Option configures a REPL
type Option func(*REPL)

// WithStreaming selects streaming replies (the default) or whole replies
func WithStreaming(stream bool) Option {
	return func(r *REPL) {
		r.stream = stream
	}
}

// WithAssistantName sets the label printed before replies
func WithAssistantName(name string) Option {
	return func(r *REPL) {
		if name != "" {
			r.assistantName = name
		}
	}
}

// WithStyling forces colored labels on or off. By default they are on
// only when out is a terminal.
func WithStyling(styled bool) Option {
	return func(r *REPL) {
		r.styled = styled
	}
}

// New creates a loop reading from in and writing to out
func New(conv Conversation, in io.Reader, out io.Writer, opts ...Option) *REPL {
	r := &REPL{
		conv:          conv,
		in:            in,
		out:           out,
		stream:        true,
		assistantName: prompt.DefaultAssistantName,
		styled:        isTerminal(out),
	}
	for _, opt := range opts {
		opt(r)
	}

	renderer := lipgloss.NewRenderer(out)
	r.title = renderer.NewStyle().Bold(true)
	r.userLabel = renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	r.botLabel = renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	r.notice = renderer.NewStyle().Faint(true)
	return r
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func (r *REPL) render(style lipgloss.Style, s string) string {
	if !r.styled {
		return s
	}
	return style.Render(s)
}

// Run prints the banner and loops until a quit keyword, end of input or
// ctx cancellation.
//
// Lines are read on a separate goroutine. When Run returns early (quit or
// cancellation) that goroutine stays parked in Read until the input yields
// or is closed; callers embedding the REPL over a long-lived reader such as
// os.Stdin should close it, or exit, once Run returns.
func (r *REPL) Run(ctx context.Context) error {
	r.banner()

	lines := make(chan string)
	readErr := make(chan error, 1)
	done := make(chan struct{})
	defer close(done)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r.in)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-done:
				return
			}
		}
		readErr <- scanner.Err()
	}()

	for {
		fmt.Fprintf(r.out, "\n%s ", r.render(r.userLabel, "You:"))

		var line string
		var ok bool
		select {
		case <-ctx.Done():
			fmt.Fprintf(r.out, "\n\n%s\n", interruptedMsg)
			return nil
		case line, ok = <-lines:
		}
		if !ok {
			fmt.Fprintf(r.out, "\n\n%s\n", goodbyeMessage)
			select {
			case err := <-readErr:
				if err != nil {
					return fmt.Errorf("read input: %w", err)
				}
			default:
			}
			return nil
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}

		switch strings.ToLower(input) {
		case KeywordQuit, KeywordExit:
			fmt.Fprintf(r.out, "\n%s\n", goodbyeMessage)
			return nil
		case KeywordClear:
			r.conv.Clear()
			fmt.Fprintf(r.out, "\n%s\n", r.render(r.notice, clearedNotice))
			continue
		case KeywordHistory:
			fmt.Fprintf(r.out, "\n%s\n", r.conv.Summarize())
			continue
		case KeywordTokens:
			notice := fmt.Sprintf("[Approximate tokens in context: %d]", r.conv.TokenCount())
			fmt.Fprintf(r.out, "\n%s\n", r.render(r.notice, notice))
			continue
		}

		fmt.Fprintf(r.out, "\n%s ", r.render(r.botLabel, r.assistantName+":"))
		r.reply(ctx, input)
	}
}

func (r *REPL) banner() {
	rule := strings.Repeat("=", bannerWidth)
	fmt.Fprintln(r.out, rule)
	fmt.Fprintln(r.out, r.render(r.title, "Welcome to Botbyte AI Agent!"))
	fmt.Fprintln(r.out, rule)
	fmt.Fprintf(r.out, "\nType '%s' or '%s' to end the conversation.\n", KeywordQuit, KeywordExit)
	fmt.Fprintf(r.out, "Type '%s' to clear conversation history.\n", KeywordClear)
	fmt.Fprintf(r.out, "Type '%s' to see conversation history.\n", KeywordHistory)
	fmt.Fprintf(r.out, "Type '%s' to see the approximate context size.\n", KeywordTokens)
}

// reply sends input and prints the answer. In streaming mode fragments are
// printed as they arrive; a failure text, never streamed, is printed whole.
func (r *REPL) reply(ctx context.Context, input string) {
	if !r.stream {
		fmt.Fprintln(r.out, r.conv.Send(ctx, input))
		return
	}

	var streamed strings.Builder
	reply := r.conv.SendStream(ctx, input, func(fragment string) {
		streamed.WriteString(fragment)
		io.WriteString(r.out, fragment)
	})
	if reply != streamed.String() {
		if streamed.Len() > 0 {
			fmt.Fprintln(r.out)
		}
		io.WriteString(r.out, reply)
	}
	fmt.Fprintln(r.out)
}
