package groq

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sanketbagad/agent-botbyte/llm"
	"github.com/sanketbagad/agent-botbyte/message"
)

func TestNewDefaults(t *testing.T) {
	p := New(nil)
	if p.Name() != "groq" {
		t.Errorf("Expected name groq, got %q", p.Name())
	}
	if p.Model() != DefaultModel {
		t.Errorf("Expected model %s, got %q", DefaultModel, p.Model())
	}
}

func TestProviderGenerate(t *testing.T) {
	var model string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("Expected path /chat/completions, got %s", r.URL.Path)
		}
		var body map[string]any
		json.NewDecoder(r.Body).Decode(&body)
		model, _ = body["model"].(string)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"x","object":"chat.completion","model":"llama","choices":[{"index":0,"message":{"role":"assistant","content":"fast hello"},"finish_reason":"stop"}]}`))
	}))
	defer ts.Close()

	p := New(&Config{APIKey: "gsk-test", BaseURL: ts.URL})
	resp, err := p.Generate(context.Background(), &llm.GenerateRequest{
		Messages: []message.Message{message.User("hi")},
	})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if resp.Content != "fast hello" {
		t.Errorf("Expected 'fast hello', got %q", resp.Content)
	}
	if model != DefaultModel {
		t.Errorf("Expected model %s in request, got %q", DefaultModel, model)
	}
}
