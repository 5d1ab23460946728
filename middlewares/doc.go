// Package middlewares provides the HTTP middleware stack of the service.
//
// # Request ID
//
// RequestID reuses X-Request-ID (or X-Correlation-ID) from the request or
// generates a UUID. Pair it with RequestIDExtractor so every log line
// carries request_id:
//
//	app := duesflow.New(
//	    duesflow.WithLogger("api", middlewares.RequestIDExtractor()),
//	    duesflow.WithMiddleware(middlewares.RequestID()),
//	)
//
// # Request logger
//
// RequestLogger writes one line per request with method, path, status and
// duration.
//
// # CORS
//
// CORS sets Access-Control-Allow-Origin, -Headers and -Methods on every
// response and answers OPTIONS with 204. The defaults allow any origin, the
// headers browser clients of the dispatch endpoint send, and POST.
//
// # Recover and Timeout
//
// Recover turns panics into *PanicError. Timeout puts a deadline on the
// request context and reports *TimeoutError when the handler ran past it
// without writing a response. Both errors reach the app's error handler.
//
// # Order
//
//	duesflow.WithMiddleware(
//	    middlewares.RequestID(),
//	    middlewares.RequestLogger(),
//	    middlewares.CORS(),
//	    middlewares.Recover(),
//	    middlewares.Timeout(30*time.Second),
//	)
package middlewares
