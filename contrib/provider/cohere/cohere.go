// Package cohere talks to the Cohere v2 chat API. It answers in one piece;
// sessions surface the reply as a single fragment when streaming.
package cohere

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	errorskg "github.com/sanketbagad/agent-botbyte/errors"
	"github.com/sanketbagad/agent-botbyte/llm"
)

const (
	// DefaultBaseURL is the Cohere API root
	DefaultBaseURL = "https://api.cohere.com"

	// DefaultModel is used when neither the config nor the request names a model
	DefaultModel = "command-r-plus"
)

// Config holds Cohere provider configuration
type Config struct {
	APIKey      string
	BaseURL     string
	Model       string
	MaxTokens   int64
	Temperature float64
}

// Provider implements llm.Client for Cohere
type Provider struct {
	config *Config
	client *http.Client
}

var _ llm.Client = (*Provider)(nil)

// New creates a new Cohere provider
func New(config *Config) *Provider {
	if config == nil {
		config = &Config{}
	}
	if config.Model == "" {
		config.Model = DefaultModel
	}
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}

	return &Provider{
		config: config,
		client: &http.Client{},
	}
}

// Name returns the provider name
func (p *Provider) Name() string {
	return "cohere"
}

// Model returns the configured model
func (p *Provider) Model() string {
	return p.config.Model
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int64         `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature,omitempty"`
}

type chatResponse struct {
	Message struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	} `json:"message"`
}

type apiError struct {
	Message string `json:"message"`
}

// Generate sends the conversation and returns the full reply
func (p *Provider) Generate(ctx context.Context, req *llm.GenerateRequest) (*llm.GenerateResponse, error) {
	if req == nil {
		return nil, fmt.Errorf("generate request cannot be nil")
	}

	model := req.Model
	if model == "" {
		model = p.config.Model
	}

	payload := chatRequest{
		Model:       model,
		Messages:    make([]chatMessage, len(req.Messages)),
		MaxTokens:   p.config.MaxTokens,
		Temperature: p.config.Temperature,
	}
	for i, msg := range req.Messages {
		payload.Messages[i] = chatMessage{Role: string(msg.Role), Content: msg.Content}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := strings.TrimRight(p.config.BaseURL, "/") + "/v2/chat"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+p.config.APIKey)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	httpResp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if httpResp.StatusCode != http.StatusOK {
		var apiErr apiError
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Message != "" {
			return nil, fmt.Errorf("Cohere API error (status %d): %s", httpResp.StatusCode, apiErr.Message)
		}
		return nil, fmt.Errorf("Cohere API error (status %d): %s", httpResp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	var resp chatResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	var text strings.Builder
	for _, block := range resp.Message.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}
	if len(resp.Message.Content) == 0 {
		return nil, fmt.Errorf("cohere: %w", errorskg.ErrEmptyResponse)
	}

	return &llm.GenerateResponse{Content: text.String(), Model: model}, nil
}
