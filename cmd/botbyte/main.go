// Botbyte
//
// A conversational AI assistant for the terminal. Chat interactively, ask
// one-off questions, or walk through the bundled examples.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var version = "dev"

var (
	configPath   string
	providerName string
	modelName    string
	systemPrompt string
	personaName  string
	noStream     bool
	metricsAddr  string
)

var rootCmd = &cobra.Command{
	Use:   "botbyte",
	Short: "Botbyte - AI assistant in your terminal",
	Long: `Botbyte is a conversational AI assistant backed by OpenAI, Anthropic, Gemini, Groq or Cohere.

  botbyte                                   Start an interactive chat
  botbyte ask "What is Go?"                 Ask a single question
  botbyte examples                          Run the example walkthrough
  botbyte --persona pirate                  Chat with a different persona

The API key is read from OPENAI_API_KEY (or ANTHROPIC_API_KEY / GEMINI_API_KEY),
either from the environment or from a .env file in the working directory.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runChat,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", os.Getenv("BOTBYTE_CONFIG"), "Path to a YAML config file")
	flags.StringVar(&providerName, "provider", "", "Completion provider: openai, claude, gemini, groq, cohere")
	flags.StringVar(&modelName, "model", "", "Model identifier (default depends on the provider)")
	flags.StringVar(&systemPrompt, "system-prompt", "", "Custom system prompt, overrides --persona")
	flags.StringVar(&personaName, "persona", "", "Built-in persona: botbyte, pirate")
	flags.BoolVar(&noStream, "no-stream", false, "Print replies only once they are complete")
	flags.StringVar(&metricsAddr, "metrics-addr", "", "Expose Prometheus metrics on this address, e.g. :9090")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "\nError: %v\n", err)
		stop()
		os.Exit(1)
	}
}
