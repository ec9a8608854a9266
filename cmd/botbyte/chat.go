package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/sanketbagad/agent-botbyte/repl"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive chat (default command)",
	Long: `Start an interactive chat session.

Type 'quit' or 'exit' to leave, 'clear' to forget the conversation,
'history' to print it and 'tokens' to see the approximate context size.`,
	Args: cobra.NoArgs,
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	a, err := setup(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	if err := a.validate(); err != nil {
		return err
	}

	s, err := a.newSession("")
	if err != nil {
		return err
	}
	a.logger.Info("chat started", "session_id", s.ID(), "provider", s.Provider(), "model", s.Model())

	r := repl.New(s, os.Stdin, os.Stdout,
		repl.WithStreaming(a.cfg.Session.Stream),
		repl.WithAssistantName(a.cfg.Session.AssistantName),
	)
	return r.Run(cmd.Context())
}
