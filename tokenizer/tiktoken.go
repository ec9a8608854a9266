package tokenizer

import (
	"github.com/pkoukk/tiktoken-go"

	"github.com/sanketbagad/agent-botbyte/pkg/logging"
)

// DefaultEncoding is used for models tiktoken does not know, e.g. Claude or
// Gemini models, where counts are only an estimate anyway.
const DefaultEncoding = "cl100k_base"

var _ Tokenizer = (*Tiktoken)(nil)

// Tiktoken counts tokens with the BPE encoding of an OpenAI model
type Tiktoken struct {
	enc *tiktoken.Tiktoken
}

// NewTiktoken loads the encoding for model, or treats model as an
// encoding name when it is not a known model.
func NewTiktoken(model string) (*Tiktoken, error) {
	enc, err := tiktoken.EncodingForModel(model)
	if err != nil {
		enc, err = tiktoken.GetEncoding(model)
		if err != nil {
			return nil, err
		}
	}
	return &Tiktoken{enc: enc}, nil
}

// Encode returns the token ids of text
func (t *Tiktoken) Encode(text string) []int {
	return t.enc.Encode(text, nil, nil)
}

// CountTokens implements Tokenizer
func (t *Tiktoken) CountTokens(text string) int {
	return len(t.Encode(text))
}

// ForModel returns the best available tokenizer for model: its tiktoken
// encoding, then DefaultEncoding, then SimpleTokenizer when no encoding
// can be loaded (tiktoken fetches BPE ranks on first use).
func ForModel(model string) Tokenizer {
	if tk, err := NewTiktoken(model); err == nil {
		return tk
	}
	tk, err := NewTiktoken(DefaultEncoding)
	if err == nil {
		return tk
	}
	logging.WithComponent("tokenizer").Warn("tiktoken unavailable, using simple tokenizer", "model", model, "error", err)
	return NewSimple()
}
