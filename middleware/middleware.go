package middleware

import (
	"context"

	"github.com/sanketbagad/agent-botbyte/llm"
)

// Context carries one completion call through the middleware chain
type Context struct {
	// Provider is the name of the client serving the call
	Provider string

	// Request sent to the provider
	Request *llm.GenerateRequest

	// Reply is the assembled reply text, set by the final handler
	Reply string

	// Fragments counts the non-empty chunks delivered in streaming mode
	Fragments int

	// Error from execution
	Error error

	// Metadata for passing data between middlewares
	Metadata map[string]any

	context context.Context
}

// NewContext creates a new middleware context
func NewContext(ctx context.Context, provider string, req *llm.GenerateRequest) *Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Context{
		Provider: provider,
		Request:  req,
		Metadata: make(map[string]any),
		context:  ctx,
	}
}

// Context returns the underlying context.Context
func (c *Context) Context() context.Context {
	if c.context == nil {
		return context.Background()
	}
	return c.context
}

// SetContext replaces the underlying context.Context, e.g. to carry a span
// to the handlers further down the chain.
func (c *Context) SetContext(ctx context.Context) {
	if ctx != nil {
		c.context = ctx
	}
}

// Streaming reports whether the call is a streaming one
func (c *Context) Streaming() bool {
	return c.Request != nil && c.Request.Stream
}

// Mode returns "stream" or "sync", used as a label by logs and metrics
func (c *Context) Mode() string {
	if c.Streaming() {
		return "stream"
	}
	return "sync"
}

// Middleware defines the interface for middleware components
// Middlewares can observe or alter a completion call around the provider
type Middleware interface {
	// Name returns the name of the middleware for logging and debugging
	Name() string

	// Execute runs the middleware logic
	// It receives the current context and a next handler to continue the chain
	// Returning error will stop the middleware chain
	Execute(ctx *Context, next Handler) error
}

// Handler is the function called to pass control to the next middleware
type Handler func(*Context) error

// Func adapts a plain function into a named Middleware
func Func(name string, fn func(*Context, Handler) error) Middleware {
	return &funcMiddleware{name: name, fn: fn}
}

type funcMiddleware struct {
	name string
	fn   func(*Context, Handler) error
}

func (m *funcMiddleware) Name() string { return m.name }

func (m *funcMiddleware) Execute(ctx *Context, next Handler) error {
	return m.fn(ctx, next)
}

// Chain represents a sequence of middleware to be executed
type Chain struct {
	middlewares []Middleware
}

// NewChain creates a new middleware chain, skipping nil entries
func NewChain(middlewares ...Middleware) *Chain {
	c := &Chain{}
	for _, m := range middlewares {
		c.Add(m)
	}
	return c
}

// Add appends a middleware to the chain
func (c *Chain) Add(m Middleware) *Chain {
	if m != nil {
		c.middlewares = append(c.middlewares, m)
	}
	return c
}

// List returns the middlewares in execution order
func (c *Chain) List() []Middleware {
	return append([]Middleware(nil), c.middlewares...)
}

// Len returns the number of middlewares in the chain
func (c *Chain) Len() int {
	return len(c.middlewares)
}

// Execute runs all middlewares in the chain, then the final handler
func (c *Chain) Execute(ctx *Context, finalHandler Handler) error {
	return c.executeMiddleware(ctx, 0, finalHandler)
}

func (c *Chain) executeMiddleware(ctx *Context, index int, finalHandler Handler) error {
	if index >= len(c.middlewares) {
		return finalHandler(ctx)
	}

	nextHandler := func(ctx *Context) error {
		return c.executeMiddleware(ctx, index+1, finalHandler)
	}

	return c.middlewares[index].Execute(ctx, nextHandler)
}
