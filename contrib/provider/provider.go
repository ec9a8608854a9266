// Package provider builds a completion client from a provider name.
package provider

import (
	"context"
	"fmt"
	"strings"

	"github.com/sanketbagad/agent-botbyte/contrib/provider/claude"
	"github.com/sanketbagad/agent-botbyte/contrib/provider/cohere"
	"github.com/sanketbagad/agent-botbyte/contrib/provider/gemini"
	"github.com/sanketbagad/agent-botbyte/contrib/provider/groq"
	"github.com/sanketbagad/agent-botbyte/contrib/provider/openai"
	errorskg "github.com/sanketbagad/agent-botbyte/errors"
	"github.com/sanketbagad/agent-botbyte/llm"
)

// Supported provider names
const (
	OpenAI = "openai"
	Claude = "claude"
	Gemini = "gemini"
	Groq   = "groq"
	Cohere = "cohere"
)

// Config selects and configures a provider backend
type Config struct {
	Name        string
	APIKey      string
	BaseURL     string
	Model       string
	MaxTokens   int64
	Temperature float64
}

// Names lists the supported provider names
func Names() []string {
	return []string{OpenAI, Claude, Gemini, Groq, Cohere}
}

// Normalize maps aliases onto canonical provider names. Empty means OpenAI.
func Normalize(name string) string {
	switch n := strings.ToLower(strings.TrimSpace(name)); n {
	case "", "gpt":
		return OpenAI
	case "anthropic":
		return Claude
	case "google":
		return Gemini
	default:
		return n
	}
}

// DefaultModel returns the model a provider uses when none is configured
func DefaultModel(name string) string {
	switch Normalize(name) {
	case Claude:
		return claude.DefaultModel
	case Gemini:
		return gemini.DefaultModel
	case Groq:
		return groq.DefaultModel
	case Cohere:
		return cohere.DefaultModel
	default:
		return openai.DefaultModel
	}
}

// New creates the client for cfg.Name
func New(ctx context.Context, cfg Config) (llm.Client, error) {
	if cfg.APIKey == "" {
		return nil, errorskg.ErrMissingAPIKey
	}

	switch Normalize(cfg.Name) {
	case OpenAI:
		return openai.New(&openai.Config{
			APIKey:      cfg.APIKey,
			BaseURL:     cfg.BaseURL,
			Model:       cfg.Model,
			MaxTokens:   cfg.MaxTokens,
			Temperature: cfg.Temperature,
		}), nil
	case Claude:
		return claude.New(&claude.Config{
			APIKey:      cfg.APIKey,
			BaseURL:     cfg.BaseURL,
			Model:       cfg.Model,
			MaxTokens:   cfg.MaxTokens,
			Temperature: cfg.Temperature,
		}), nil
	case Gemini:
		return gemini.New(ctx, &gemini.Config{
			APIKey:      cfg.APIKey,
			BaseURL:     cfg.BaseURL,
			Model:       cfg.Model,
			MaxTokens:   int32(cfg.MaxTokens),
			Temperature: float32(cfg.Temperature),
		})
	case Groq:
		return groq.New(&groq.Config{
			APIKey:      cfg.APIKey,
			BaseURL:     cfg.BaseURL,
			Model:       cfg.Model,
			MaxTokens:   cfg.MaxTokens,
			Temperature: cfg.Temperature,
		}), nil
	case Cohere:
		return cohere.New(&cohere.Config{
			APIKey:      cfg.APIKey,
			BaseURL:     cfg.BaseURL,
			Model:       cfg.Model,
			MaxTokens:   cfg.MaxTokens,
			Temperature: cfg.Temperature,
		}), nil
	default:
		return nil, fmt.Errorf("%w: %q (supported: %s)", errorskg.ErrUnknownProvider, cfg.Name, strings.Join(Names(), ", "))
	}
}
