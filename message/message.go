package message

import (
	"strings"
	"time"
)

// Role represents the role of the message sender
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Label returns the role name as shown in transcripts, e.g. "USER".
func (r Role) Label() string {
	return strings.ToUpper(string(r))
}

// Message is a single turn of a conversation. Messages are values; once
// built they are never modified in place.
type Message struct {
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// New creates a new message with the given role and content
func New(role Role, content string) Message {
	return Message{
		Role:      role,
		Content:   content,
		CreatedAt: time.Now(),
	}
}

// System is shorthand for New(RoleSystem, content).
func System(content string) Message { return New(RoleSystem, content) }

// User is shorthand for New(RoleUser, content).
func User(content string) Message { return New(RoleUser, content) }

// Assistant is shorthand for New(RoleAssistant, content).
func Assistant(content string) Message { return New(RoleAssistant, content) }

// String renders the message the way transcripts show it.
func (m Message) String() string {
	return m.Role.Label() + ": " + m.Content
}

// Clone copies a slice of messages so callers cannot alias the source.
func Clone(msgs []Message) []Message {
	if len(msgs) == 0 {
		return nil
	}
	out := make([]Message, len(msgs))
	copy(out, msgs)
	return out
}
