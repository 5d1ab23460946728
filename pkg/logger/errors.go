package logger

import "errors"

// ErrSentryFlush is returned by a FlushFunc when events were still buffered at the deadline.
var ErrSentryFlush = errors.New("logger: sentry flush timed out")
