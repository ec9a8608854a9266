package conversation

import (
	"github.com/sanketbagad/agent-botbyte/message"
)

// Log is the ordered history of a conversation. Entries are only ever
// appended; Clear is the single way to drop them. The log never holds the
// system prompt, which is added to outbound requests instead.
type Log struct {
	messages []message.Message
}

// New creates an empty log
func New() *Log {
	return &Log{
		messages: make([]message.Message, 0),
	}
}

// Append adds a message to the end of the log
func (l *Log) Append(msg message.Message) {
	l.messages = append(l.messages, msg)
}

// Messages returns a copy of every message in the log, oldest first
func (l *Log) Messages() []message.Message {
	return message.Clone(l.messages)
}

// Clear removes all messages from the log
func (l *Log) Clear() {
	l.messages = make([]message.Message, 0)
}

// Len returns the current number of messages
func (l *Log) Len() int {
	return len(l.messages)
}

// Empty reports whether the log holds no messages
func (l *Log) Empty() bool {
	return len(l.messages) == 0
}
