package metrics

import (
	"time"

	"github.com/sanketbagad/agent-botbyte/middleware"
	"github.com/sanketbagad/agent-botbyte/pkg/metrics"
)

// Recorder records prometheus metrics for each completion call
type Recorder struct{}

// New creates a metrics middleware
func New() *Recorder {
	return &Recorder{}
}

// Name returns the middleware name
func (m *Recorder) Name() string {
	return "Metrics"
}

// Execute times the provider call and counts its outcome
func (m *Recorder) Execute(ctx *middleware.Context, next middleware.Handler) error {
	start := time.Now()
	err := next(ctx)

	mode := ctx.Mode()
	status := "success"
	if err != nil {
		status = "failed"
	}

	metrics.CompletionsTotal.WithLabelValues(ctx.Provider, mode, status).Inc()
	metrics.CompletionDuration.WithLabelValues(mode).Observe(time.Since(start).Seconds())
	if ctx.Fragments > 0 {
		metrics.StreamFragmentsTotal.Add(float64(ctx.Fragments))
	}
	return err
}
