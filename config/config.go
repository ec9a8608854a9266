// Package config loads the botbyte configuration from defaults, an optional
// YAML file, a .env file and the process environment, in that order.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/sanketbagad/agent-botbyte/contrib/provider"
	"github.com/sanketbagad/agent-botbyte/pkg/logging"
	"github.com/sanketbagad/agent-botbyte/pkg/telemetry"
	"github.com/sanketbagad/agent-botbyte/prompt"
	"github.com/sanketbagad/agent-botbyte/session"
)

// Environment variables read by Load
const (
	EnvProvider     = "BOTBYTE_PROVIDER"
	EnvModel        = "BOTBYTE_MODEL"
	EnvBaseURL      = "BOTBYTE_BASE_URL"
	EnvSystemPrompt = "BOTBYTE_SYSTEM_PROMPT"
	EnvLogLevel     = "BOTBYTE_LOG_LEVEL"
	EnvLogFormat    = "BOTBYTE_LOG_FORMAT"
	EnvLogOutput    = "BOTBYTE_LOG_OUTPUT"
	EnvMetricsAddr  = "BOTBYTE_METRICS_ADDR"
	EnvOTLPEndpoint = "OTEL_EXPORTER_OTLP_ENDPOINT"
	EnvOpenAIKey    = "OPENAI_API_KEY"
	EnvAnthropicKey = "ANTHROPIC_API_KEY"
	EnvGeminiKey    = "GEMINI_API_KEY"
	EnvGroqKey      = "GROQ_API_KEY"
	EnvCohereKey    = "COHERE_API_KEY"
)

// DefaultDotEnvFile is read from the working directory by Load
const DefaultDotEnvFile = ".env"

// Config is the full botbyte configuration
type Config struct {
	LLM       LLMConfig        `yaml:"llm"`
	Session   SessionConfig    `yaml:"session"`
	Log       logging.Config   `yaml:"log"`
	Telemetry telemetry.Config `yaml:"telemetry"`
	Metrics   MetricsConfig    `yaml:"metrics"`
}

// LLMConfig selects and configures the completion provider
type LLMConfig struct {
	Provider    string  `yaml:"provider"`
	APIKey      string  `yaml:"api_key"`
	BaseURL     string  `yaml:"base_url"`
	Model       string  `yaml:"model"`
	Temperature float64 `yaml:"temperature"`
	MaxTokens   int64   `yaml:"max_tokens"`
}

// SessionConfig controls the conversation defaults
type SessionConfig struct {
	// SystemPrompt wins over Persona when set
	SystemPrompt  string `yaml:"system_prompt"`
	Persona       string `yaml:"persona"`
	AssistantName string `yaml:"assistant_name"`
	Stream        bool   `yaml:"stream"`
}

// MetricsConfig controls the Prometheus endpoint. An empty Addr disables it.
type MetricsConfig struct {
	Addr string `yaml:"addr"`
}

// Default returns the configuration used when nothing else is set
func Default() *Config {
	return &Config{
		LLM: LLMConfig{
			Provider: provider.OpenAI,
		},
		Session: SessionConfig{
			Persona:       prompt.PersonaBotbyte,
			AssistantName: prompt.DefaultAssistantName,
			Stream:        true,
		},
		Log: logging.Config{
			Level:  "warn",
			Format: "text",
			Output: "stderr",
		},
		Telemetry: telemetry.Config{
			Disable: true,
		},
	}
}

// Load builds the configuration. path names an optional YAML file; a
// missing .env file in the working directory is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	if err := loadDotEnv(DefaultDotEnvFile); err != nil {
		return nil, err
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

// loadDotEnv populates the environment from file without overriding
// variables that are already set.
func loadDotEnv(file string) error {
	if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", file, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	setFromEnv(&c.LLM.Provider, EnvProvider)
	c.LLM.Provider = provider.Normalize(c.LLM.Provider)
	setFromEnv(&c.LLM.Model, EnvModel)
	setFromEnv(&c.LLM.BaseURL, EnvBaseURL)
	setFromEnv(&c.LLM.APIKey, APIKeyEnv(c.LLM.Provider))

	setFromEnv(&c.Session.SystemPrompt, EnvSystemPrompt)

	setFromEnv(&c.Log.Level, EnvLogLevel)
	setFromEnv(&c.Log.Format, EnvLogFormat)
	setFromEnv(&c.Log.Output, EnvLogOutput)

	setFromEnv(&c.Metrics.Addr, EnvMetricsAddr)

	if v := os.Getenv(EnvOTLPEndpoint); v != "" {
		c.Telemetry.Endpoint = v
		c.Telemetry.Disable = false
	}
}

func setFromEnv(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}

// SetProvider switches to the named provider and picks up its API key from
// the environment, dropping a key that belonged to the previous provider.
func (c *Config) SetProvider(name string) {
	name = provider.Normalize(name)
	if name == c.LLM.Provider {
		return
	}
	c.LLM.Provider = name
	c.LLM.APIKey = os.Getenv(APIKeyEnv(name))
}

// APIKeyEnv returns the environment variable holding the key for the
// named provider.
func APIKeyEnv(name string) string {
	switch provider.Normalize(name) {
	case provider.Claude:
		return EnvAnthropicKey
	case provider.Gemini:
		return EnvGeminiKey
	case provider.Groq:
		return EnvGroqKey
	case provider.Cohere:
		return EnvCohereKey
	default:
		return EnvOpenAIKey
	}
}

// Validate checks the configuration, reporting every problem at once
func (c *Config) Validate() error {
	v := NewValidator()

	name := provider.Normalize(c.LLM.Provider)
	v.ValidateOneOf("llm.provider", name, provider.Names()...)
	keyEnv := APIKeyEnv(name)
	v.Require("llm.api_key", c.LLM.APIKey != "",
		fmt.Sprintf("set the %s environment variable, or create a .env file with: %s=your_api_key_here", keyEnv, keyEnv))
	v.ValidateFloatRange("llm.temperature", c.LLM.Temperature, 0.0, 2.0)
	v.RequireNonNegative("llm.max_tokens", c.LLM.MaxTokens)

	if c.Session.SystemPrompt == "" {
		v.ValidateOneOf("session.persona", c.Session.Persona, prompt.Builtin().Names()...)
		v.RequireNonEmpty("session.assistant_name", c.Session.AssistantName)
	}

	v.ValidateOneOf("log.level", strings.ToLower(c.Log.Level), "debug", "info", "warn", "warning", "error")
	v.ValidateOneOf("log.format", strings.ToLower(c.Log.Format), "text", "json")
	if !c.Telemetry.Disable {
		v.ValidateOneOf("telemetry.exporter", c.Telemetry.Exporter,
			telemetry.ExporterAuto, telemetry.ExporterStdout, telemetry.ExporterOTLP)
		v.ValidateFloatRange("telemetry.sample_ratio", c.Telemetry.SampleRatio, 0.0, 1.0)
	}

	return v.Error()
}

// SystemPrompt resolves the prompt a new session starts with: the explicit
// prompt when set, otherwise the rendered persona.
func (c *Config) SystemPrompt() (string, error) {
	if c.Session.SystemPrompt != "" {
		return c.Session.SystemPrompt, nil
	}
	return prompt.Builtin().Render(c.Session.Persona, c.Session.AssistantName)
}

// SessionConfig maps the configuration onto a session.Config
func (c *Config) SessionConfig() (session.Config, error) {
	systemPrompt, err := c.SystemPrompt()
	if err != nil {
		return session.Config{}, err
	}
	return session.Config{
		Provider:     provider.Normalize(c.LLM.Provider),
		APIKey:       c.LLM.APIKey,
		BaseURL:      c.LLM.BaseURL,
		Model:        c.LLM.Model,
		SystemPrompt: systemPrompt,
		Temperature:  c.LLM.Temperature,
		MaxTokens:    c.LLM.MaxTokens,
	}, nil
}
