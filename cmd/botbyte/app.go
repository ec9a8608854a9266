package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/sanketbagad/agent-botbyte/config"
	"github.com/sanketbagad/agent-botbyte/middleware"
	mwlogger "github.com/sanketbagad/agent-botbyte/middleware/logger"
	mwmetrics "github.com/sanketbagad/agent-botbyte/middleware/metrics"
	"github.com/sanketbagad/agent-botbyte/middleware/tracing"
	"github.com/sanketbagad/agent-botbyte/pkg/logging"
	"github.com/sanketbagad/agent-botbyte/pkg/metrics"
	"github.com/sanketbagad/agent-botbyte/pkg/telemetry"
	"github.com/sanketbagad/agent-botbyte/session"
)

// app is the process-wide wiring shared by every command
type app struct {
	cfg         *config.Config
	logger      *slog.Logger
	middlewares []middleware.Middleware
	closers     []func()
}

// setup loads the configuration, applies command-line flags and starts
// logging, tracing and the metrics endpoint.
func setup(cmd *cobra.Command) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	applyFlags(cmd, cfg)

	logger, closeLog := logging.New(cfg.Log)
	logging.SetLogger(logger)
	a := &app{cfg: cfg, logger: logger, closers: []func(){closeLog}}

	ctx := cmd.Context()
	shutdown, err := telemetry.Init(ctx, cfg.Telemetry)
	if err != nil {
		a.close()
		return nil, fmt.Errorf("init tracing: %w", err)
	}
	a.closers = append(a.closers, func() {
		if err := shutdown(context.Background()); err != nil {
			logger.Warn("tracing shutdown failed", "error", err)
		}
	})

	if cfg.Metrics.Addr != "" {
		go func() {
			if err := metrics.Serve(ctx, cfg.Metrics.Addr); err != nil {
				logger.Error("metrics endpoint failed", "error", err)
			}
		}()
	}

	a.middlewares = []middleware.Middleware{
		tracing.New(),
		mwmetrics.New(),
		mwlogger.New(logging.WithComponent("completion")),
	}
	return a, nil
}

func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("provider") {
		cfg.SetProvider(providerName)
	}
	if flags.Changed("model") {
		cfg.LLM.Model = modelName
	}
	if flags.Changed("system-prompt") {
		cfg.Session.SystemPrompt = systemPrompt
	}
	if flags.Changed("persona") {
		cfg.Session.Persona = personaName
		if !flags.Changed("system-prompt") {
			cfg.Session.SystemPrompt = ""
		}
	}
	if flags.Changed("no-stream") {
		cfg.Session.Stream = !noStream
	}
	if flags.Changed("metrics-addr") {
		cfg.Metrics.Addr = metricsAddr
	}
}

// validate reports configuration problems together with the hint on how to
// provide an API key.
func (a *app) validate() error {
	if err := a.cfg.Validate(); err != nil {
		return fmt.Errorf("%w\n\n%s", err, a.keyHint())
	}
	return nil
}

func (a *app) keyHint() string {
	env := config.APIKeyEnv(a.cfg.LLM.Provider)
	return fmt.Sprintf("Please set your %s environment variable.\nYou can create a .env file with: %s=your_api_key_here", env, env)
}

// newSession builds a session from the configuration. A non-empty prompt
// replaces the configured one.
func (a *app) newSession(prompt string, extra ...middleware.Middleware) (*session.Session, error) {
	sc, err := a.cfg.SessionConfig()
	if err != nil {
		return nil, err
	}
	if prompt != "" {
		sc.SystemPrompt = prompt
	}

	mws := make([]middleware.Middleware, 0, len(a.middlewares)+len(extra))
	mws = append(mws, a.middlewares...)
	mws = append(mws, extra...)

	return session.New(sc,
		session.WithLogger(a.logger),
		session.WithMiddleware(mws...),
	)
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}
