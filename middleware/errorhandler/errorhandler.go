package errorhandler

import (
	"github.com/sanketbagad/agent-botbyte/middleware"
)

// HandlerFunc sees every failed completion. It may return the error, a
// different one, or nil after setting a fallback c.Reply.
type HandlerFunc func(c *middleware.Context, err error) error

// ErrorHandler handles errors in the middleware chain
type ErrorHandler struct {
	handler HandlerFunc
}

// New creates an error handling middleware
func New(handler HandlerFunc) *ErrorHandler {
	return &ErrorHandler{handler: handler}
}

// Name returns the middleware name
func (m *ErrorHandler) Name() string {
	return "error-handler"
}

// Execute hands downstream failures to the handler
func (m *ErrorHandler) Execute(ctx *middleware.Context, next middleware.Handler) error {
	err := next(ctx)
	if err != nil && m.handler != nil {
		return m.handler(ctx, err)
	}
	return err
}
