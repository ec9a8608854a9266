package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sanketbagad/agent-botbyte/pkg/logging"
)

var (
	// CompletionsTotal counts completion calls, labeled by outcome.
	CompletionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "botbyte_completions_total",
		Help: "The total number of completion calls sent to a provider",
	}, []string{"provider", "mode", "status"}) // mode: sync, stream; status: success, failed

	// CompletionDuration measures the time until the full reply is assembled.
	CompletionDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "botbyte_completion_duration_seconds",
		Help:    "Time taken to assemble a full reply",
		Buckets: prometheus.DefBuckets,
	}, []string{"mode"})

	// StreamFragmentsTotal counts non-empty fragments surfaced while streaming.
	StreamFragmentsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "botbyte_stream_fragments_total",
		Help: "The total number of streamed reply fragments",
	})
)

// Serve exposes /metrics on addr until ctx is cancelled.
func Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	logging.WithComponent("metrics").Info("metrics endpoint listening", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
