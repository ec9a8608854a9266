package prompt

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestPersonaRender(t *testing.T) {
	p, err := NewPersona("greet", "Hello {{.Name}}!")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		name          string
		assistantName string
		want          string
	}{
		{name: "explicit name", assistantName: "Alice", want: "Hello Alice!"},
		{name: "default name", want: "Hello " + DefaultAssistantName + "!"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := p.Render(tt.assistantName)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestNewPersonaInvalid(t *testing.T) {
	if _, err := NewPersona("bad", "{{.Name"); err == nil {
		t.Error("Expected parse error for malformed template")
	}
	if _, err := NewPersona("", "text"); err == nil {
		t.Error("Expected error for empty persona name")
	}
}

func TestPersonaRenderUnknownField(t *testing.T) {
	p, err := NewPersona("odd", "I am {{.Title}}")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err = p.Render("Robo")
	if err == nil || !strings.Contains(err.Error(), "render persona odd") {
		t.Errorf("Expected render error naming the persona, got %v", err)
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	for _, name := range []string{"b", "a"} {
		p, err := NewPersona(name, name)
		if err != nil {
			t.Fatalf("new persona %s: %v", name, err)
		}
		if err := r.Add(p); err != nil {
			t.Fatalf("add %s: %v", name, err)
		}
	}

	dup, _ := NewPersona("a", "again")
	if err := r.Add(dup); err == nil {
		t.Error("Expected error adding duplicate persona")
	}
	if err := r.Add(nil); err == nil {
		t.Error("Expected error adding nil persona")
	}

	if got := r.Names(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("Expected sorted names [a b], got %v", got)
	}

	_, err := r.Render("missing", "")
	if !errors.Is(err, ErrUnknownPersona) {
		t.Fatalf("Expected ErrUnknownPersona, got %v", err)
	}
	if !strings.Contains(err.Error(), "available: a, b") {
		t.Errorf("Expected the available personas in the error, got %v", err)
	}
}

func TestDefaultSystemPrompt(t *testing.T) {
	want := "You are Botbyte AI, a helpful and intelligent AI assistant created by Botbyte AI. " +
		"You are knowledgeable, friendly, and always aim to provide accurate and useful information."
	if DefaultSystemPrompt != want {
		t.Errorf("unexpected default prompt:\n%s", DefaultSystemPrompt)
	}
}

func TestBuiltin(t *testing.T) {
	r := Builtin()

	if got := r.Names(); !reflect.DeepEqual(got, []string{PersonaBotbyte, PersonaPirate}) {
		t.Errorf("unexpected builtin personas %v", got)
	}

	pirate, err := r.Render(PersonaPirate, "")
	if err != nil {
		t.Fatalf("render pirate: %v", err)
	}
	if !strings.Contains(pirate, "pirate speak") {
		t.Errorf("unexpected pirate prompt: %s", pirate)
	}

	custom, err := r.Render(PersonaBotbyte, "Robo")
	if err != nil {
		t.Fatalf("render botbyte: %v", err)
	}
	if !strings.HasPrefix(custom, "You are Robo,") {
		t.Errorf("assistant name not substituted: %s", custom)
	}
}
