package app

import (
	"context"
	"io"
	"log/slog"

	"github.com/specialistvlad/burstplan/internal/config"
	"github.com/specialistvlad/burstplan/internal/ctxlog"
	"github.com/uber-go/tally/v4"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	logW   io.Writer
	logger *slog.Logger
	config *Config
	loader config.Loader
	scope  tally.Scope
}

// Option customizes an App.
type Option func(*App)

// WithMetricsScope reports scheduler metrics to scope instead of discarding
// them.
func WithMetricsScope(scope tally.Scope) Option {
	return func(a *App) {
		a.scope = scope
	}
}

// WithLogWriter sends logs to w instead of the report writer.
func WithLogWriter(w io.Writer) Option {
	return func(a *App) {
		a.logW = w
	}
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance with its own isolated logger. Nothing is loaded
// until Run.
func NewApp(outW io.Writer, cfg *Config, loader config.Loader, opts ...Option) *App {
	a := &App{
		outW:   outW,
		logW:   outW,
		config: cfg,
		loader: loader,
		scope:  tally.NoopScope,
	}
	for _, opt := range opts {
		opt(a)
	}

	a.logger = newLogger(cfg.LogLevel, cfg.LogFormat, a.logW)
	a.logger.Debug("Logger configured successfully.")
	return a
}

// Context returns ctx carrying the app's logger.
func (a *App) Context(ctx context.Context) context.Context {
	return ctxlog.WithLogger(ctx, a.logger)
}
