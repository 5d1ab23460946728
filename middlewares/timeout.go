package middlewares

import (
	"context"
	"errors"
	"time"

	"github.com/quickwinfinance/duesflow/internal"
)

// DefaultTimeout is the default request timeout.
const DefaultTimeout = 30 * time.Second

// Timeout returns middleware that attaches a deadline to the request context.
// Handlers and the calls they make observe it through the context. When the
// deadline passes before anything was written, a TimeoutError goes to the
// app's error handler.
func Timeout(timeout time.Duration) internal.Middleware {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			ctx, cancel := context.WithTimeout(c.Context(), timeout)
			defer cancel()
			c.SetContext(ctx)

			err := next(c)
			if c.Written() || !errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return err
			}

			c.LogWarn("request timeout", "timeout", timeout.String())
			return &TimeoutError{Duration: timeout}
		}
	}
}
