// Package tokenizer estimates how many model tokens a conversation uses.
package tokenizer

import (
	"strings"
	"unicode"

	"github.com/sanketbagad/agent-botbyte/message"
)

// Tokenizer counts tokens in text
type Tokenizer interface {
	CountTokens(text string) int
}

// Chat-format overheads used by OpenAI models: every message is wrapped in
// a few control tokens and every reply is primed with three more.
const (
	tokensPerMessage = 4
	tokensReplyPrime = 3
)

// CountMessages estimates the prompt tokens needed to send msgs
func CountMessages(t Tokenizer, msgs []message.Message) int {
	if len(msgs) == 0 {
		return 0
	}
	total := tokensReplyPrime
	for _, msg := range msgs {
		total += tokensPerMessage
		total += t.CountTokens(string(msg.Role))
		total += t.CountTokens(msg.Content)
	}
	return total
}

var _ Tokenizer = (*SimpleTokenizer)(nil)

// SimpleTokenizer is a rough, dictionary-free fallback used when no BPE
// encoding is available.
//
// Tokenization rules:
//   - letters and digits: one token per continuous run
//   - Han characters: one token per rune
//   - punctuation and symbols: one token each
type SimpleTokenizer struct{}

// NewSimple creates a SimpleTokenizer
func NewSimple() *SimpleTokenizer {
	return &SimpleTokenizer{}
}

// CountTokens implements Tokenizer
func (t *SimpleTokenizer) CountTokens(text string) int {
	return len(splitTokens(text))
}

func splitTokens(s string) []string {
	var toks []string
	var buf strings.Builder

	flush := func() {
		if buf.Len() > 0 {
			toks = append(toks, buf.String())
			buf.Reset()
		}
	}

	for _, r := range s {
		switch {
		case unicode.IsSpace(r):
			flush()
		case unicode.Is(unicode.Han, r):
			flush()
			toks = append(toks, string(r))
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			buf.WriteRune(r)
		default:
			flush()
			toks = append(toks, string(r))
		}
	}

	flush()
	return toks
}
