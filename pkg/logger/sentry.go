package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	sentryslog "github.com/getsentry/sentry-go/slog"
)

// Config holds logger configuration.
type Config struct {
	// Level is the minimum level written to stdout.
	Level slog.Level `env:"LOG_LEVEL" envDefault:"info"`

	// SentryDSN enables Sentry fan-out when set.
	SentryDSN string `env:"SENTRY_DSN"`

	// SentryEnvironment tags Sentry events.
	SentryEnvironment string `env:"SENTRY_ENVIRONMENT" envDefault:"production"`

	// Release tags Sentry events with the build version.
	Release string `env:"RELEASE"`

	// Output overrides stdout. Used by tests.
	Output io.Writer `env:"-"`
}

// FlushFunc waits up to timeout for buffered Sentry events to be delivered.
type FlushFunc func(ctx context.Context) error

// NewWithSentry creates a logger that writes JSON to stdout and, when a DSN
// is configured, forwards errors to Sentry as events and warnings as logs.
// Without a DSN, or when Sentry fails to initialise, it degrades to stdout.
// The returned FlushFunc is safe to call in every case and fits a shutdown hook.
func NewWithSentry(cfg Config, extractors ...ContextExtractor) (*slog.Logger, FlushFunc) {
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}
	stdout := slog.NewJSONHandler(out, &slog.HandlerOptions{Level: cfg.Level})
	noFlush := func(context.Context) error { return nil }

	if cfg.SentryDSN == "" {
		return slog.New(NewLogHandlerDecorator(stdout, extractors...)), noFlush
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.SentryDSN,
		Environment: cfg.SentryEnvironment,
		Release:     cfg.Release,
		EnableLogs:  true,
	}); err != nil {
		slog.New(stdout).Error("failed to initialize sentry", slog.Any("error", err))
		return slog.New(NewLogHandlerDecorator(stdout, extractors...)), noFlush
	}

	sentryHandler := sentryslog.Option{
		EventLevel: []slog.Level{slog.LevelError},
		LogLevel:   []slog.Level{slog.LevelWarn, slog.LevelError},
	}.NewSentryHandler(context.Background())

	flush := func(ctx context.Context) error {
		timeout := 2 * time.Second
		if deadline, ok := ctx.Deadline(); ok {
			timeout = time.Until(deadline)
		}
		if !sentry.Flush(timeout) {
			return ErrSentryFlush
		}
		return nil
	}

	return slog.New(NewLogHandlerDecorator(newMultiHandler(stdout, sentryHandler), extractors...)), flush
}
