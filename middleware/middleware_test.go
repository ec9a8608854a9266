package middleware

import (
	"context"
	"errors"
	"testing"

	"github.com/sanketbagad/agent-botbyte/llm"
)

// TestMiddleware records its name in order and optionally fails
type TestMiddleware struct {
	name  string
	err   error
	order *[]string
}

func (m *TestMiddleware) Name() string { return m.name }

func (m *TestMiddleware) Execute(ctx *Context, next Handler) error {
	*m.order = append(*m.order, m.name)
	if m.err != nil {
		return m.err
	}
	return next(ctx)
}

func TestMiddlewareChain(t *testing.T) {
	t.Run("empty chain executes final handler", func(t *testing.T) {
		chain := NewChain()
		executed := false

		err := chain.Execute(&Context{}, func(ctx *Context) error {
			executed = true
			return nil
		})

		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		if !executed {
			t.Error("final handler was not executed")
		}
	})

	t.Run("middleware chain executes in order", func(t *testing.T) {
		order := []string{}

		m1 := &TestMiddleware{name: "m1", order: &order}
		m2 := &TestMiddleware{name: "m2", order: &order}

		chain := NewChain(m1, m2)

		err := chain.Execute(&Context{}, func(c *Context) error {
			order = append(order, "final")
			return nil
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		expected := []string{"m1", "m2", "final"}
		if len(order) != len(expected) {
			t.Fatalf("expected %d steps, got %d", len(expected), len(order))
		}
		for i, e := range expected {
			if order[i] != e {
				t.Errorf("expected step %d to be %s, got %s", i, e, order[i])
			}
		}
	})

	t.Run("error stops chain execution", func(t *testing.T) {
		order := []string{}
		m1 := &TestMiddleware{name: "m1", err: errors.New("test error"), order: &order}
		m2 := &TestMiddleware{name: "m2", order: &order}

		chain := NewChain(m1, m2)

		finalCalled := false
		err := chain.Execute(&Context{}, func(c *Context) error {
			finalCalled = true
			return nil
		})

		if err == nil {
			t.Error("expected error from middleware")
		}
		if finalCalled {
			t.Error("final handler should not be called after middleware error")
		}
		if len(order) != 1 {
			t.Errorf("expected only m1 to run, got %v", order)
		}
	})

	t.Run("nil middlewares are skipped", func(t *testing.T) {
		chain := NewChain(nil)
		chain.Add(nil)
		if chain.Len() != 0 {
			t.Errorf("expected empty chain, got %d", chain.Len())
		}
	})
}

func TestFunc(t *testing.T) {
	called := false
	m := Func("probe", func(ctx *Context, next Handler) error {
		called = true
		ctx.Metadata["seen"] = true
		return next(ctx)
	})

	if m.Name() != "probe" {
		t.Errorf("expected name probe, got %s", m.Name())
	}

	ctx := NewContext(context.Background(), "mock", &llm.GenerateRequest{})
	if err := NewChain(m).Execute(ctx, func(*Context) error { return nil }); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !called || ctx.Metadata["seen"] != true {
		t.Error("func middleware did not run")
	}
}

func TestContextMode(t *testing.T) {
	ctx := NewContext(context.Background(), "mock", &llm.GenerateRequest{Stream: true})
	if ctx.Mode() != "stream" {
		t.Errorf("expected stream mode, got %s", ctx.Mode())
	}

	ctx = NewContext(nil, "mock", &llm.GenerateRequest{})
	if ctx.Mode() != "sync" {
		t.Errorf("expected sync mode, got %s", ctx.Mode())
	}
	if ctx.Context() == nil {
		t.Error("expected a background context when nil is passed")
	}
}
