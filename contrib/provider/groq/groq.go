// Package groq talks to Groq, which serves an OpenAI-compatible chat
// completions API.
package groq

import (
	"github.com/sanketbagad/agent-botbyte/contrib/provider/openai"
	"github.com/sanketbagad/agent-botbyte/llm"
)

const (
	// DefaultBaseURL is Groq's OpenAI-compatible endpoint
	DefaultBaseURL = "https://api.groq.com/openai/v1"

	// DefaultModel is used when the config names none
	DefaultModel = "llama-3.1-8b-instant"
)

// Config holds Groq provider configuration
type Config struct {
	APIKey      string
	BaseURL     string
	Model       string
	MaxTokens   int64
	Temperature float64
}

// Provider reuses the OpenAI client against Groq's endpoint
type Provider struct {
	*openai.Provider
}

var _ llm.StreamClient = (*Provider)(nil)

// New creates a new Groq provider
func New(config *Config) *Provider {
	if config == nil {
		config = &Config{}
	}
	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	model := config.Model
	if model == "" {
		model = DefaultModel
	}

	return &Provider{Provider: openai.New(&openai.Config{
		APIKey:      config.APIKey,
		BaseURL:     baseURL,
		Model:       model,
		MaxTokens:   config.MaxTokens,
		Temperature: config.Temperature,
	})}
}

// Name returns the provider name
func (p *Provider) Name() string {
	return "groq"
}
