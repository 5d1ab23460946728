// Package internal provides the core types and implementation of the duesflow
// HTTP application.
//
// This package is internal and should not be used directly. Import
// "github.com/quickwinfinance/duesflow" instead, which re-exports the public API.
//
// # Core Types
//
//   - App: Orchestrates HTTP routing, middleware, health probes and graceful shutdown
//   - Context: Provides request/response access, JSON binding and request-scoped logging
//   - Router: Interface handlers use to declare routes with HTTP methods and grouping
//   - Handler: Interface implemented by types that declare routes on a router
//   - HandlerFunc: Signature for individual route handlers that return errors
//   - Middleware: Wraps handlers to add cross-cutting concerns like CORS or logging
//   - ErrorHandler: Renders errors returned from handlers
//
// # Context as context.Context
//
// Context embeds context.Context, so it can be passed directly to any function
// that expects a standard library context:
//
//	func (h *Dispatch) send(c duesflow.Context) error {
//	    status, result := h.dispatcher.Handle(c, req)
//	    return c.JSON(status, result)
//	}
//
// # Middleware
//
// Global middleware (WithMiddleware) and group middleware (Router.Use) run
// before route matching. Route middleware passed to GET/POST wraps a single
// handler. Middleware and handlers share one ResponseWriter, so Written and
// Status reflect what any layer has sent.
//
// # Error Handling
//
// Handlers return errors. When nothing has been written yet, the app hands
// the error to the configured ErrorHandler; without one a plain 500 is sent.
// HTTPError carries a status code and a client-safe message.
package internal
