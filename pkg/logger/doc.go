// Package logger builds the service's structured slog loggers.
//
// Loggers write JSON and can carry context extractors that add request-scoped
// attributes on every call:
//
//	log := logger.New(logger.FromContextValue(requestIDKey{}, "request_id"))
//	log.InfoContext(ctx, "email sent", slog.String("email_id", id))
//	// {"level":"INFO","msg":"email sent","email_id":"...","request_id":"..."}
//
// # Sentry
//
// NewWithSentry fans records out to stdout and Sentry. Errors become Sentry
// events and warnings are stored as Sentry logs. With an empty DSN, or when
// Sentry cannot be initialised, only stdout is used:
//
//	log, flush := logger.NewWithSentry(logger.Config{
//	    SentryDSN:         os.Getenv("SENTRY_DSN"),
//	    SentryEnvironment: "production",
//	}, extractors...)
//	defer flush(context.Background())
//
// # Decoration
//
// LogHandlerDecorator wraps any slog.Handler to apply extractors, so the same
// extractors work for every destination behind the fan-out.
package logger
