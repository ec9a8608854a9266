package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sanketbagad/agent-botbyte/middleware"
	"github.com/sanketbagad/agent-botbyte/middleware/errorhandler"
)

var askStream bool

var askCmd = &cobra.Command{
	Use:   "ask QUESTION",
	Short: "Ask a single question and print the reply",
	Long: `Ask a single question without starting an interactive chat. Example:
  botbyte ask "What is artificial intelligence?"
  botbyte ask --stream "Tell me a short story about a robot."`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().BoolVar(&askStream, "stream", false, "Print the reply as it is generated")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	a, err := setup(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	if err := a.validate(); err != nil {
		return err
	}

	var failure error
	recordFailure := errorhandler.New(func(c *middleware.Context, err error) error {
		failure = err
		return err
	})
	s, err := a.newSession("", recordFailure)
	if err != nil {
		return err
	}

	question := strings.Join(args, " ")
	out := cmd.OutOrStdout()
	if askStream {
		streamed := 0
		reply := s.SendStream(cmd.Context(), question, func(fragment string) {
			streamed += len(fragment)
			fmt.Fprint(out, fragment)
		})
		if streamed == 0 && failure == nil {
			fmt.Fprint(out, reply)
		}
		fmt.Fprintln(out)
	} else {
		reply := s.Send(cmd.Context(), question)
		if failure == nil {
			fmt.Fprintln(out, reply)
		}
	}

	if failure != nil {
		return fmt.Errorf("ask: %w", failure)
	}
	return nil
}
