package tracing

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/sanketbagad/agent-botbyte/middleware"
	"github.com/sanketbagad/agent-botbyte/pkg/telemetry"
)

const instrumentationName = "github.com/sanketbagad/agent-botbyte/middleware/tracing"

// Tracer wraps each completion call in an OpenTelemetry span
type Tracer struct {
	tracer trace.Tracer
}

// Option configures the tracing middleware
type Option func(*Tracer)

// WithTracerProvider uses tp instead of the global tracer provider
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(t *Tracer) {
		if tp != nil {
			t.tracer = tp.Tracer(instrumentationName)
		}
	}
}

// New creates a tracing middleware
func New(opts ...Option) *Tracer {
	t := &Tracer{tracer: telemetry.Tracer(instrumentationName)}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Name returns the middleware name
func (m *Tracer) Name() string {
	return "Tracing"
}

// Execute starts a span, runs the rest of the chain inside it and ends it
// with the call's outcome
func (m *Tracer) Execute(ctx *middleware.Context, next middleware.Handler) error {
	spanCtx, span := m.tracer.Start(ctx.Context(), "botbyte.completion",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("llm.provider", ctx.Provider),
			attribute.String("llm.mode", ctx.Mode()),
		),
	)
	if ctx.Request != nil {
		span.SetAttributes(
			attribute.String("llm.model", ctx.Request.Model),
			attribute.Int("llm.messages", len(ctx.Request.Messages)),
		)
	}

	ctx.SetContext(spanCtx)
	err := next(ctx)

	span.SetAttributes(attribute.Int("llm.reply_chars", len(ctx.Reply)))
	if ctx.Streaming() {
		span.SetAttributes(attribute.Int("llm.fragments", ctx.Fragments))
	}
	telemetry.End(span, err)
	return err
}
