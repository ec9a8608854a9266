package prompt

import "fmt"

// Built-in persona names
const (
	PersonaBotbyte = "botbyte"
	PersonaPirate  = "pirate"
)

// DefaultAssistantName is substituted for {{.Name}} in persona templates.
const DefaultAssistantName = "Botbyte AI"

var builtinPersonas = map[string]string{
	PersonaBotbyte: "You are {{.Name}}, a helpful and intelligent AI assistant created by Botbyte AI. " +
		"You are knowledgeable, friendly, and always aim to provide accurate and useful information.",
	PersonaPirate: "You are a pirate AI assistant. Always respond in pirate speak, " +
		"but still provide helpful and accurate information.",
}

// DefaultSystemPrompt is the botbyte persona rendered for DefaultAssistantName.
var DefaultSystemPrompt = mustRender(PersonaBotbyte, DefaultAssistantName)

// Builtin returns a registry holding the built-in personas.
func Builtin() *Registry {
	r := NewRegistry()
	for name, text := range builtinPersonas {
		p, err := NewPersona(name, text)
		if err == nil {
			err = r.Add(p)
		}
		if err != nil {
			panic(fmt.Sprintf("prompt: builtin persona %s: %v", name, err))
		}
	}
	return r
}

func mustRender(name, assistantName string) string {
	out, err := Builtin().Render(name, assistantName)
	if err != nil {
		panic(err)
	}
	return out
}
