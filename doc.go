// Package duesflow is the HTTP service behind the Quick Win Finance
// collections dashboard. It serves the client dues list, the escalation
// flow and its message templates, and the send-email function that turns a
// prepared reminder into one email through the Resend API.
//
// The package itself is a thin application layer over chi: an [App] built
// with [New] and configured with options, handlers that declare routes,
// middleware written against [Context], and a graceful [App.Run].
//
// # Quick Start
//
//	app := duesflow.New(
//	    duesflow.WithCustomLogger(log),
//	    duesflow.WithMiddleware(
//	        middlewares.RequestID(),
//	        middlewares.RequestLogger(),
//	        middlewares.CORS(),
//	        middlewares.Recover(),
//	    ),
//	    duesflow.WithErrorHandler(handlers.ErrorHandler),
//	    duesflow.WithHandlers(handlers.NewDispatch(dispatcher)),
//	    duesflow.WithHealthChecks(),
//	)
//
//	if err := app.Run(":8080", duesflow.ShutdownHook(redis.Shutdown(client))); err != nil {
//	    log.Error("server stopped", "error", err)
//	}
//
// # Handlers
//
// Handlers implement [Handler] to declare routes:
//
//	type DispatchHandler struct {
//	    dispatcher *dispatch.Dispatcher
//	}
//
//	func (h *DispatchHandler) Routes(r duesflow.Router) {
//	    r.POST("/functions/v1/send-email", h.send)
//	}
//
// # Errors
//
// A handler that returns an error hands it to the [ErrorHandler] set with
// [WithErrorHandler], unless a response was already written. [HTTPError]
// values built with [ErrNotFound], [ErrConflict] and the other constructors
// carry the status and the client-facing message.
//
// # Health
//
// [WithHealthChecks] mounts /health/live and /health/ready. Readiness checks
// added with [WithReadinessCheck] run in parallel on every probe.
package duesflow
