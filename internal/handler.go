package internal

// Handler declares routes on a router.
//
// Example:
//
//	type ClientsHandler struct {
//	    repo dues.Repository
//	}
//
//	func (h *ClientsHandler) Routes(r duesflow.Router) {
//	    r.GET("/api/clients", h.list)
//	    r.GET("/api/clients/{id}", h.get)
//	}
type Handler interface {
	Routes(r Router)
}

// HandlerFunc is the signature for route handlers.
// It receives a Context and returns an error.
// Returning a non-nil error hands the request to the app's ErrorHandler.
type HandlerFunc func(c Context) error

// Middleware wraps a HandlerFunc to add cross-cutting concerns.
// Middleware can inspect the request, short-circuit processing,
// or act on the result of the wrapped handler.
type Middleware func(next HandlerFunc) HandlerFunc

// ErrorHandler handles errors returned from handlers.
type ErrorHandler func(Context, error) error
