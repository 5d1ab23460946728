package middlewares

import (
	"log/slog"
	"time"

	"github.com/quickwinfinance/duesflow/internal"
)

// RequestLogger returns middleware that logs one line per request with
// method, path, status and duration. Server errors log at error level.
func RequestLogger() internal.Middleware {
	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			start := time.Now()
			err := next(c)

			status := c.Status()
			if err != nil && !c.Written() {
				status = statusOf(err)
			}

			attrs := []any{
				slog.String("method", c.Request().Method),
				slog.String("path", c.Request().URL.Path),
				slog.Int("status", status),
				slog.Duration("duration", time.Since(start)),
			}
			if err != nil {
				attrs = append(attrs, slog.Any("error", err))
			}

			if status >= 500 {
				c.LogError("request", attrs...)
			} else {
				c.LogInfo("request", attrs...)
			}
			return err
		}
	}
}
