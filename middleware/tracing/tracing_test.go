package tracing

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"

	"github.com/sanketbagad/agent-botbyte/llm"
	"github.com/sanketbagad/agent-botbyte/message"
	"github.com/sanketbagad/agent-botbyte/middleware"
)

func TestTracerRecordsSpan(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	mw := New(WithTracerProvider(tp))

	req := &llm.GenerateRequest{
		Model:    "gpt-test",
		Messages: []message.Message{message.System("sys"), message.User("hi")},
		Stream:   true,
	}
	ctx := middleware.NewContext(context.Background(), "mock", req)

	var inner trace.SpanContext
	err := mw.Execute(ctx, func(c *middleware.Context) error {
		inner = trace.SpanContextFromContext(c.Context())
		c.Reply = "hello"
		c.Fragments = 2
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !inner.IsValid() {
		t.Error("handler did not receive the span context")
	}

	spans := sr.Ended()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	span := spans[0]
	if span.Name() != "botbyte.completion" {
		t.Errorf("unexpected span name %s", span.Name())
	}
	if span.Status().Code != codes.Ok {
		t.Errorf("expected ok status, got %v", span.Status().Code)
	}

	attrs := map[attribute.Key]attribute.Value{}
	for _, kv := range span.Attributes() {
		attrs[kv.Key] = kv.Value
	}
	if attrs["llm.model"].AsString() != "gpt-test" {
		t.Errorf("model attribute missing: %v", attrs)
	}
	if attrs["llm.messages"].AsInt64() != 2 {
		t.Errorf("messages attribute wrong: %v", attrs["llm.messages"])
	}
	if attrs["llm.fragments"].AsInt64() != 2 {
		t.Errorf("fragments attribute wrong: %v", attrs["llm.fragments"])
	}
}

func TestTracerRecordsFailure(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	mw := New(WithTracerProvider(tp))

	ctx := middleware.NewContext(context.Background(), "mock", &llm.GenerateRequest{})
	boom := errors.New("boom")
	if err := mw.Execute(ctx, func(*middleware.Context) error { return boom }); !errors.Is(err, boom) {
		t.Fatalf("expected error to pass through, got %v", err)
	}

	spans := sr.Ended()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	if spans[0].Status().Code != codes.Error {
		t.Errorf("expected error status, got %v", spans[0].Status().Code)
	}
}

func TestTracerUsesGlobalProvider(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	mw := New()
	ctx := middleware.NewContext(context.Background(), "mock", &llm.GenerateRequest{Model: "m"})
	if err := mw.Execute(ctx, func(*middleware.Context) error { return nil }); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := len(sr.Ended()); got != 1 {
		t.Errorf("expected the span on the global provider, got %d spans", got)
	}
}
