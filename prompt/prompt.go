// Package prompt renders the system prompt a session starts with.
package prompt

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"text/template"
)

// ErrUnknownPersona is returned when a persona name is not registered
var ErrUnknownPersona = errors.New("unknown persona")

// Persona is a named system prompt. Its text may reference the assistant
// name as {{.Name}}.
type Persona struct {
	Name string
	tmpl *template.Template
}

// NewPersona parses text as a persona template. Any field other than
// {{.Name}} fails at render time.
func NewPersona(name, text string) (*Persona, error) {
	if name == "" {
		return nil, errors.New("persona name cannot be empty")
	}
	tmpl, err := template.New(name).Option("missingkey=error").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parse persona %s: %w", name, err)
	}
	return &Persona{Name: name, tmpl: tmpl}, nil
}

// Render produces the system prompt for assistantName, or for
// DefaultAssistantName when it is empty.
func (p *Persona) Render(assistantName string) (string, error) {
	if assistantName == "" {
		assistantName = DefaultAssistantName
	}
	var buf strings.Builder
	if err := p.tmpl.Execute(&buf, map[string]string{"Name": assistantName}); err != nil {
		return "", fmt.Errorf("render persona %s: %w", p.Name, err)
	}
	return buf.String(), nil
}

// Registry holds personas by name. It is filled once at startup and read
// afterwards; Add is not safe to call concurrently with lookups.
type Registry struct {
	personas map[string]*Persona
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{personas: make(map[string]*Persona)}
}

// Add registers p, refusing to replace an existing persona
func (r *Registry) Add(p *Persona) error {
	if p == nil {
		return errors.New("persona cannot be nil")
	}
	if _, exists := r.personas[p.Name]; exists {
		return fmt.Errorf("persona %s already registered", p.Name)
	}
	r.personas[p.Name] = p
	return nil
}

// Lookup returns the named persona. Unknown names wrap ErrUnknownPersona
// and list what is available.
func (r *Registry) Lookup(name string) (*Persona, error) {
	p, ok := r.personas[name]
	if !ok {
		return nil, fmt.Errorf("%w %q (available: %s)", ErrUnknownPersona, name, strings.Join(r.Names(), ", "))
	}
	return p, nil
}

// Render looks up a persona and renders it for assistantName
func (r *Registry) Render(name, assistantName string) (string, error) {
	p, err := r.Lookup(name)
	if err != nil {
		return "", err
	}
	return p.Render(assistantName)
}

// Names returns the registered persona names, sorted
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.personas))
	for name := range r.personas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
