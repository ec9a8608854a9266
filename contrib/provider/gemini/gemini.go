package gemini

import (
	"context"
	"fmt"
	"iter"
	"strings"

	"google.golang.org/genai"

	errorskg "github.com/sanketbagad/agent-botbyte/errors"
	"github.com/sanketbagad/agent-botbyte/llm"
	"github.com/sanketbagad/agent-botbyte/message"
)

// DefaultModel is used when neither the config nor the request names a model
const DefaultModel = "gemini-2.5-flash"

// Config holds Gemini provider configuration
type Config struct {
	APIKey      string
	BaseURL     string
	Model       string
	MaxTokens   int32
	Temperature float32
}

// DefaultConfig returns default Gemini configuration
func DefaultConfig(apiKey string) *Config {
	return &Config{
		APIKey: apiKey,
		Model:  DefaultModel,
	}
}

// Provider implements llm.StreamClient for Google Gemini
type Provider struct {
	config *Config
	client *genai.Client
}

var _ llm.StreamClient = (*Provider)(nil)

// New creates a new Gemini provider using the Google Gen AI SDK
func New(ctx context.Context, config *Config) (*Provider, error) {
	if config == nil {
		config = DefaultConfig("")
	}
	if config.Model == "" {
		config.Model = DefaultModel
	}

	cc := &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if config.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: config.BaseURL}
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &Provider{
		config: config,
		client: client,
	}, nil
}

// Name implements llm.Client
func (p *Provider) Name() string {
	return "gemini"
}

// Model returns the configured default model
func (p *Provider) Model() string {
	return p.config.Model
}

// Generate implements llm.Client
func (p *Provider) Generate(ctx context.Context, req *llm.GenerateRequest) (*llm.GenerateResponse, error) {
	if req == nil {
		return nil, fmt.Errorf("generate request cannot be nil")
	}

	model, contents, cfg := p.buildRequest(req)
	resp, err := p.client.Models.GenerateContent(ctx, model, contents, cfg)
	if err != nil {
		return nil, fmt.Errorf("Gemini API error: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return nil, fmt.Errorf("no text returned from Gemini: %w", errorskg.ErrEmptyResponse)
	}

	return &llm.GenerateResponse{
		Content: text,
		Model:   model,
	}, nil
}

// GenerateStream implements llm.StreamClient
func (p *Provider) GenerateStream(ctx context.Context, req *llm.GenerateRequest) iter.Seq2[*llm.Chunk, error] {
	return func(yield func(*llm.Chunk, error) bool) {
		if req == nil {
			yield(nil, fmt.Errorf("stream request cannot be nil"))
			return
		}

		model, contents, cfg := p.buildRequest(req)
		for resp, err := range p.client.Models.GenerateContentStream(ctx, model, contents, cfg) {
			if err != nil {
				yield(nil, fmt.Errorf("Gemini streaming error: %w", err))
				return
			}
			if resp == nil {
				continue
			}
			if text := resp.Text(); text != "" {
				if !yield(&llm.Chunk{Text: text}, nil) {
					return
				}
			}
		}
	}
}

// buildRequest maps the conversation onto Gemini contents. System messages
// become the system instruction and assistant turns use the "model" role.
func (p *Provider) buildRequest(req *llm.GenerateRequest) (string, []*genai.Content, *genai.GenerateContentConfig) {
	model := req.Model
	if model == "" {
		model = p.config.Model
	}

	var systemPrompts []string
	contents := make([]*genai.Content, 0, len(req.Messages))
	for _, msg := range req.Messages {
		switch msg.Role {
		case message.RoleSystem:
			systemPrompts = append(systemPrompts, msg.Content)
		case message.RoleUser:
			contents = append(contents, genai.NewContentFromText(msg.Content, genai.RoleUser))
		case message.RoleAssistant:
			contents = append(contents, genai.NewContentFromText(msg.Content, genai.RoleModel))
		}
	}

	cfg := &genai.GenerateContentConfig{}
	if len(systemPrompts) > 0 {
		cfg.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{genai.NewPartFromText(strings.Join(systemPrompts, "\n"))},
		}
	}
	if p.config.Temperature > 0 {
		cfg.Temperature = genai.Ptr(p.config.Temperature)
	}
	if p.config.MaxTokens > 0 {
		cfg.MaxOutputTokens = p.config.MaxTokens
	}

	return model, contents, cfg
}
