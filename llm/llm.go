// Package llm defines the boundary between a conversation session and a
// remote completion provider.
package llm

import (
	"context"
	"iter"

	"github.com/sanketbagad/agent-botbyte/message"
)

// Client defines the interface for LLM providers
type Client interface {
	// Name identifies the provider in logs and metrics
	Name() string

	// Generate returns one complete reply for the request
	Generate(ctx context.Context, req *GenerateRequest) (*GenerateResponse, error)
}

// StreamClient defines the interface for LLM providers that support streaming
type StreamClient interface {
	Client

	// GenerateStream yields the reply as a finite sequence of text chunks.
	// The sequence can be ranged over once; a non-nil error ends it.
	GenerateStream(ctx context.Context, req *GenerateRequest) iter.Seq2[*Chunk, error]
}

// GenerateRequest bundles the inputs of one completion call. Messages are
// sent in order; the first entry is normally the system prompt.
type GenerateRequest struct {
	Model    string
	Messages []message.Message
	Stream   bool
}

// GenerateResponse captures the reply of a non-streaming call.
type GenerateResponse struct {
	Content string
	Model   string
}

// Chunk is one incremental piece of a streamed reply.
type Chunk struct {
	Text string
}
