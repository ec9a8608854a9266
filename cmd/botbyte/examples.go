package main

import (
	"github.com/spf13/cobra"

	"github.com/sanketbagad/agent-botbyte/internal/demo"
	"github.com/sanketbagad/agent-botbyte/session"
)

var examplesCmd = &cobra.Command{
	Use:   "examples",
	Short: "Run the example walkthrough",
	Long: `Run four short scenarios against the configured provider: a basic
question, a custom system prompt, a multi-turn conversation and a
streamed reply. Scenarios are skipped when no API key is configured.`,
	Args: cobra.NoArgs,
	RunE: runExamples,
}

func init() {
	rootCmd.AddCommand(examplesCmd)
}

func runExamples(cmd *cobra.Command, args []string) error {
	a, err := setup(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	factory := func(prompt string) (*session.Session, error) {
		return a.newSession(prompt)
	}
	return demo.Run(cmd.Context(), cmd.OutOrStdout(), factory, a.keyHint())
}
