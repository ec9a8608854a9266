package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	defaultLogger *slog.Logger
	mu            sync.RWMutex
)

// Config describes where and how logs are written.
type Config struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
	Output string `yaml:"output"` // comma separated: stdout, stderr, /path/to/file

	Rotation Rotation `yaml:"rotation"`
}

// Rotation controls lumberjack rotation for file outputs.
type Rotation struct {
	MaxSize    int  `yaml:"max_size"`    // Megabytes
	MaxBackups int  `yaml:"max_backups"` // Number of old files to keep
	MaxAge     int  `yaml:"max_age"`     // Days to keep
	Compress   bool `yaml:"compress"`
}

// Logger returns the process-wide logger, lazily initialised using environment
// variables for format and level:
//   - BOTBYTE_LOG_FORMAT: "text" (default) or "json"
//   - BOTBYTE_LOG_LEVEL: debug|info|warn|error
func Logger() *slog.Logger {
	mu.RLock()
	if defaultLogger != nil {
		defer mu.RUnlock()
		return defaultLogger
	}
	mu.RUnlock()

	mu.Lock()
	defer mu.Unlock()
	if defaultLogger == nil {
		defaultLogger = newLoggerFromEnv()
	}
	return defaultLogger
}

// SetLogger overrides the global logger; mainly useful for tests.
func SetLogger(l *slog.Logger) {
	if l == nil {
		return
	}
	mu.Lock()
	defer mu.Unlock()
	defaultLogger = l
}

// WithComponent attaches a component field to the shared logger.
func WithComponent(component string) *slog.Logger {
	return Logger().With("component", component)
}

// New builds a logger from cfg. File outputs are rotated by lumberjack; the
// returned cleanup closes them.
func New(cfg Config) (*slog.Logger, func()) {
	var writers []io.Writer
	var closers []io.Closer

	for _, output := range strings.Split(cfg.Output, ",") {
		output = strings.TrimSpace(output)
		if output == "" {
			continue
		}

		switch output {
		case "stderr":
			writers = append(writers, os.Stderr)
		case "stdout":
			writers = append(writers, os.Stdout)
		default:
			l := &lumberjack.Logger{
				Filename:   output,
				MaxSize:    cfg.Rotation.MaxSize,
				MaxBackups: cfg.Rotation.MaxBackups,
				MaxAge:     cfg.Rotation.MaxAge,
				Compress:   cfg.Rotation.Compress,
			}
			writers = append(writers, l)
			closers = append(closers, l)
		}
	}

	if len(writers) == 0 {
		writers = append(writers, os.Stderr)
	}

	logger := newLogger(io.MultiWriter(writers...), cfg.Level, cfg.Format)
	cleanup := func() {
		for _, c := range closers {
			c.Close()
		}
	}
	return logger, cleanup
}

// ParseLevel maps a level name to slog.Level; unknown names mean info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func newLoggerFromEnv() *slog.Logger {
	return newLogger(os.Stderr, os.Getenv("BOTBYTE_LOG_LEVEL"), os.Getenv("BOTBYTE_LOG_FORMAT"))
}

func newLogger(w io.Writer, level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}
	var handler slog.Handler
	switch strings.ToLower(format) {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler).With("service", "botbyte")
}
