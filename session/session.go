// Package session keeps a conversation with a completion provider: an
// ordered message log, a system prompt sent ahead of it, and a send
// operation that returns the assembled reply.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sanketbagad/agent-botbyte/contrib/provider"
	"github.com/sanketbagad/agent-botbyte/conversation"
	errorskg "github.com/sanketbagad/agent-botbyte/errors"
	"github.com/sanketbagad/agent-botbyte/llm"
	"github.com/sanketbagad/agent-botbyte/message"
	"github.com/sanketbagad/agent-botbyte/middleware"
	"github.com/sanketbagad/agent-botbyte/pkg/logging"
	"github.com/sanketbagad/agent-botbyte/prompt"
	"github.com/sanketbagad/agent-botbyte/tokenizer"
)

const (
	// ErrorReplyPrefix starts the text returned instead of a reply when the
	// provider call fails.
	ErrorReplyPrefix = "Error communicating with AI: "

	// EmptyHistory is what Summarize returns for an empty log.
	EmptyHistory = "No conversation history."

	summaryHeader = "Conversation History:"
	headerRule    = "=================================================="
	turnRule      = "--------------------------------------------------"
)

// Config holds what a session needs to reach its provider.
type Config struct {
	Provider     string
	APIKey       string // required unless a client is injected with WithClient
	BaseURL      string
	Model        string // empty means the provider's default model
	SystemPrompt string // empty means prompt.DefaultSystemPrompt
	Temperature  float64
	MaxTokens    int64
}

// Sink receives each streamed fragment as it arrives.
type Sink func(fragment string)

// Session is a single conversation. It is not safe for concurrent use;
// callers that share one must serialize Send calls themselves.
type Session struct {
	id           string
	createdAt    time.Time
	systemPrompt string
	model        string
	log          *conversation.Log
	client       llm.Client
	chain        *middleware.Chain
	tokenizer    tokenizer.Tokenizer
	logger       *slog.Logger
}

// Option is a function that configures a Session
type Option func(*Session)

// WithClient injects the completion client, bypassing the provider factory
// and the API key requirement.
func WithClient(client llm.Client) Option {
	return func(s *Session) {
		s.client = client
	}
}

// WithMiddleware adds middlewares around every provider call, in order
func WithMiddleware(middlewares ...middleware.Middleware) Option {
	return func(s *Session) {
		for _, m := range middlewares {
			s.chain.Add(m)
		}
	}
}

// WithTokenizer sets the tokenizer used by TokenCount
func WithTokenizer(t tokenizer.Tokenizer) Option {
	return func(s *Session) {
		s.tokenizer = t
	}
}

// WithLogger sets the session logger
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// WithID overrides the generated session ID
func WithID(id string) Option {
	return func(s *Session) {
		if id != "" {
			s.id = id
		}
	}
}

// New creates a session from cfg. Unless a client is injected, one is
// built for cfg.Provider, which requires cfg.APIKey.
func New(cfg Config, opts ...Option) (*Session, error) {
	s := &Session{
		id:           uuid.NewString(),
		createdAt:    time.Now(),
		systemPrompt: cfg.SystemPrompt,
		log:          conversation.New(),
		chain:        middleware.NewChain(),
	}
	if s.systemPrompt == "" {
		s.systemPrompt = prompt.DefaultSystemPrompt
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = logging.WithComponent("session")
	}
	s.logger = s.logger.With("session_id", s.id)

	if s.client == nil {
		client, err := provider.New(context.Background(), provider.Config{
			Name:        cfg.Provider,
			APIKey:      cfg.APIKey,
			BaseURL:     cfg.BaseURL,
			Model:       cfg.Model,
			MaxTokens:   cfg.MaxTokens,
			Temperature: cfg.Temperature,
		})
		if err != nil {
			return nil, fmt.Errorf("create session: %w", err)
		}
		s.client = client
	}

	s.model = cfg.Model
	if s.model == "" {
		if m, ok := s.client.(interface{ Model() string }); ok && m.Model() != "" {
			s.model = m.Model()
		} else {
			s.model = provider.DefaultModel(cfg.Provider)
		}
	}

	s.logger.Debug("session created", "provider", s.client.Name(), "model", s.model)
	return s, nil
}

// ID returns the session ID
func (s *Session) ID() string {
	return s.id
}

// CreatedAt returns when the session was created
func (s *Session) CreatedAt() time.Time {
	return s.createdAt
}

// Provider returns the name of the completion client
func (s *Session) Provider() string {
	return s.client.Name()
}

// Model returns the model identifier sent with every request
func (s *Session) Model() string {
	return s.model
}

// SystemPrompt returns the current system prompt
func (s *Session) SystemPrompt() string {
	return s.systemPrompt
}

// SetSystemPrompt replaces the system prompt for subsequent sends. Messages
// already in the log are not touched.
func (s *Session) SetSystemPrompt(text string) {
	s.systemPrompt = text
}

// AppendMessage adds a message to the end of the log
func (s *Session) AppendMessage(role message.Role, content string) {
	s.log.Append(message.New(role, content))
}

// Clear empties the log. The system prompt is kept.
func (s *Session) Clear() {
	s.log.Clear()
}

// Messages returns a copy of the log, oldest first
func (s *Session) Messages() []message.Message {
	return s.log.Messages()
}

// Len returns the number of messages in the log
func (s *Session) Len() int {
	return s.log.Len()
}

// Chat sends input in streaming or non-streaming mode. sink is only used
// when stream is true.
func (s *Session) Chat(ctx context.Context, input string, stream bool, sink Sink) string {
	if stream {
		return s.SendStream(ctx, input, sink)
	}
	return s.Send(ctx, input)
}

// Send appends input as a user message, asks the provider for one complete
// reply and appends that reply as an assistant message.
//
// A failed provider call is not returned as an error: the reply is replaced
// by a text starting with ErrorReplyPrefix and no assistant message is
// appended.
func (s *Session) Send(ctx context.Context, input string) string {
	return s.send(ctx, input, false, nil)
}

// SendStream is Send in streaming mode. Every non-empty fragment is passed
// to sink as it arrives; the returned reply is their concatenation.
func (s *Session) SendStream(ctx context.Context, input string, sink Sink) string {
	return s.send(ctx, input, true, sink)
}

func (s *Session) send(ctx context.Context, input string, stream bool, sink Sink) string {
	s.log.Append(message.User(input))

	req := &llm.GenerateRequest{
		Model:    s.model,
		Messages: s.requestMessages(),
		Stream:   stream,
	}

	mwCtx := middleware.NewContext(ctx, s.client.Name(), req)
	err := s.chain.Execute(mwCtx, func(c *middleware.Context) error {
		if c.Streaming() {
			return s.stream(c, sink)
		}
		return s.generate(c)
	})
	if err != nil {
		mwCtx.Error = err
		s.logger.Warn("send failed", "mode", mwCtx.Mode(), "error", err)
		return ErrorReplyPrefix + describe(err)
	}

	s.log.Append(message.Assistant(mwCtx.Reply))
	return mwCtx.Reply
}

// requestMessages prefixes the log with the system prompt
func (s *Session) requestMessages() []message.Message {
	history := s.log.Messages()
	msgs := make([]message.Message, 0, len(history)+1)
	msgs = append(msgs, message.System(s.systemPrompt))
	return append(msgs, history...)
}

func (s *Session) generate(c *middleware.Context) error {
	resp, err := s.client.Generate(c.Context(), c.Request)
	if err != nil {
		return errorskg.NewProviderError(c.Provider, err)
	}
	if resp == nil {
		return errorskg.NewProviderError(c.Provider, errorskg.ErrEmptyResponse)
	}
	c.Reply = resp.Content
	return nil
}

// stream drains the provider's fragment sequence into c.Reply. Clients
// without streaming support answer in one piece, surfaced as one fragment.
func (s *Session) stream(c *middleware.Context, sink Sink) error {
	sc, ok := s.client.(llm.StreamClient)
	if !ok {
		if err := s.generate(c); err != nil {
			return err
		}
		if c.Reply != "" {
			c.Fragments = 1
			if sink != nil {
				sink(c.Reply)
			}
		}
		return nil
	}

	var reply strings.Builder
	for chunk, err := range sc.GenerateStream(c.Context(), c.Request) {
		if err != nil {
			return errorskg.NewProviderError(c.Provider, err)
		}
		if chunk == nil || chunk.Text == "" {
			continue
		}
		reply.WriteString(chunk.Text)
		c.Fragments++
		if sink != nil {
			sink(chunk.Text)
		}
	}
	c.Reply = reply.String()
	return nil
}

// describe strips the ProviderError wrapper, which only classifies the
// failure, from the text shown to the user.
func describe(err error) string {
	var pe *errorskg.ProviderError
	if errors.As(err, &pe) && pe.Err != nil {
		return pe.Err.Error()
	}
	return err.Error()
}

// Summarize renders the log as a transcript, or EmptyHistory when empty.
func (s *Session) Summarize() string {
	if s.log.Empty() {
		return EmptyHistory
	}

	var b strings.Builder
	b.WriteString(summaryHeader + "\n" + headerRule + "\n")
	for _, msg := range s.log.Messages() {
		b.WriteString(msg.String() + "\n" + turnRule + "\n")
	}
	return b.String()
}

// TokenCount estimates the prompt tokens the next request would use,
// system prompt included.
func (s *Session) TokenCount() int {
	if s.tokenizer == nil {
		s.tokenizer = tokenizer.ForModel(s.model)
	}
	return tokenizer.CountMessages(s.tokenizer, s.requestMessages())
}
