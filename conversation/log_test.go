package conversation

import (
	"testing"

	"github.com/sanketbagad/agent-botbyte/message"
)

func TestAppendPreservesOrder(t *testing.T) {
	log := New()
	log.Append(message.User("first"))
	log.Append(message.Assistant("second"))
	log.Append(message.User("third"))

	msgs := log.Messages()
	if len(msgs) != 3 {
		t.Fatalf("Expected 3 messages, got %d", len(msgs))
	}

	want := []string{"first", "second", "third"}
	for i, w := range want {
		if msgs[i].Content != w {
			t.Errorf("message %d: expected %q, got %q", i, w, msgs[i].Content)
		}
	}
}

func TestMessagesReturnsCopy(t *testing.T) {
	log := New()
	log.Append(message.User("hello"))

	msgs := log.Messages()
	msgs[0] = message.User("tampered")

	if got := log.Messages()[0].Content; got != "hello" {
		t.Errorf("Log was mutated through returned slice: %q", got)
	}
}

func TestEmpty(t *testing.T) {
	log := New()
	if !log.Empty() {
		t.Error("Expected new log to be empty")
	}
	log.Append(message.User("q1"))
	if log.Empty() {
		t.Error("Expected log with one message not to be empty")
	}
}

func TestClear(t *testing.T) {
	log := New()
	log.Append(message.User("q1"))
	log.Append(message.Assistant("a1"))

	log.Clear()

	if log.Len() != 0 {
		t.Errorf("Expected empty log after clear, got %d", log.Len())
	}

	log.Append(message.User("again"))
	if log.Len() != 1 {
		t.Errorf("Expected 1 message after re-append, got %d", log.Len())
	}
}
