package provider

import (
	"context"
	"errors"
	"testing"

	errorskg "github.com/sanketbagad/agent-botbyte/errors"
	"github.com/sanketbagad/agent-botbyte/llm"
)

func TestNormalize(t *testing.T) {
	tests := map[string]string{
		"":          OpenAI,
		"OpenAI":    OpenAI,
		"anthropic": Claude,
		" claude ":  Claude,
		"google":    Gemini,
		"mistral":   "mistral",
	}
	for in, want := range tests {
		if got := Normalize(in); got != want {
			t.Errorf("Normalize(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNew(t *testing.T) {
	ctx := context.Background()

	for _, name := range []string{"openai", "anthropic", "gemini", "groq"} {
		t.Run(name, func(t *testing.T) {
			client, err := New(ctx, Config{Name: name, APIKey: "test-key"})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if client.Name() != Normalize(name) {
				t.Errorf("expected %s client, got %s", Normalize(name), client.Name())
			}
			if _, ok := client.(llm.StreamClient); !ok {
				t.Errorf("%s client should support streaming", name)
			}
		})
	}
}

func TestNewCohere(t *testing.T) {
	client, err := New(context.Background(), Config{Name: Cohere, APIKey: "test-key"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.Name() != Cohere {
		t.Errorf("expected cohere client, got %s", client.Name())
	}
	if _, ok := client.(llm.StreamClient); ok {
		t.Error("cohere client answers in one piece")
	}
}

func TestNewErrors(t *testing.T) {
	ctx := context.Background()

	if _, err := New(ctx, Config{Name: "openai"}); !errors.Is(err, errorskg.ErrMissingAPIKey) {
		t.Errorf("expected ErrMissingAPIKey, got %v", err)
	}
	if _, err := New(ctx, Config{Name: "mistral", APIKey: "k"}); !errors.Is(err, errorskg.ErrUnknownProvider) {
		t.Errorf("expected ErrUnknownProvider, got %v", err)
	}
}

func TestDefaultModel(t *testing.T) {
	if got := DefaultModel(""); got != "gpt-3.5-turbo" {
		t.Errorf("expected gpt-3.5-turbo for the default provider, got %s", got)
	}
	if DefaultModel("groq") == DefaultModel("") || DefaultModel("cohere") == DefaultModel("") {
		t.Error("expected groq and cohere to have their own defaults")
	}
	if DefaultModel("claude") == DefaultModel("gemini") {
		t.Error("expected distinct defaults per provider")
	}
}
