package logger

import (
	"log/slog"
	"time"

	"github.com/sanketbagad/agent-botbyte/middleware"
	"github.com/sanketbagad/agent-botbyte/pkg/logging"
)

// CompletionLogger logs every completion call with its outcome
type CompletionLogger struct {
	logger *slog.Logger
}

// New creates a logging middleware. A nil logger uses the shared one.
func New(logger *slog.Logger) *CompletionLogger {
	if logger == nil {
		logger = logging.WithComponent("completion")
	}
	return &CompletionLogger{logger: logger}
}

// Name returns the middleware name
func (m *CompletionLogger) Name() string {
	return "CompletionLogger"
}

// Execute logs the request before and the result after the provider call
func (m *CompletionLogger) Execute(ctx *middleware.Context, next middleware.Handler) error {
	attrs := []any{"provider", ctx.Provider, "mode", ctx.Mode()}
	if ctx.Request != nil {
		attrs = append(attrs, "model", ctx.Request.Model, "messages", len(ctx.Request.Messages))
	}
	m.logger.Debug("completion request", attrs...)

	start := time.Now()
	err := next(ctx)
	attrs = append(attrs, "duration", time.Since(start))

	if err != nil {
		m.logger.Error("completion failed", append(attrs, "error", err)...)
		return err
	}

	attrs = append(attrs, "reply_chars", len(ctx.Reply))
	if ctx.Streaming() {
		attrs = append(attrs, "fragments", ctx.Fragments)
	}
	m.logger.Info("completion finished", attrs...)
	return nil
}
