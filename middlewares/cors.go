package middlewares

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/quickwinfinance/duesflow/internal"
)

// Default CORS policy for browser callers of the API.
var (
	DefaultCORSAllowHeaders = []string{"authorization", "x-client-info", "apikey", "content-type"}
	DefaultCORSAllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions}
)

// CORSConfig configures the CORS middleware.
type CORSConfig struct {
	// AllowOrigin is sent verbatim as Access-Control-Allow-Origin. Default "*".
	AllowOrigin  string
	AllowMethods []string
	AllowHeaders []string
	// MaxAge is sent on preflight responses when positive.
	MaxAge time.Duration
}

// CORSOption configures CORSConfig.
type CORSOption func(*CORSConfig)

// WithAllowOrigin sets the allowed origin.
func WithAllowOrigin(origin string) CORSOption {
	return func(cfg *CORSConfig) {
		cfg.AllowOrigin = origin
	}
}

// WithAllowMethods sets the allowed HTTP methods.
func WithAllowMethods(methods ...string) CORSOption {
	return func(cfg *CORSConfig) {
		cfg.AllowMethods = methods
	}
}

// WithAllowHeaders sets the allowed request headers.
func WithAllowHeaders(headers ...string) CORSOption {
	return func(cfg *CORSConfig) {
		cfg.AllowHeaders = headers
	}
}

// WithMaxAge sets the preflight cache duration.
func WithMaxAge(d time.Duration) CORSOption {
	return func(cfg *CORSConfig) {
		cfg.MaxAge = d
	}
}

// CORS returns middleware that adds the CORS headers to every response,
// whether or not the request carries an Origin header, and answers
// preflight OPTIONS requests with 204 and no body.
func CORS(opts ...CORSOption) internal.Middleware {
	cfg := &CORSConfig{
		AllowOrigin:  "*",
		AllowMethods: DefaultCORSAllowMethods,
		AllowHeaders: DefaultCORSAllowHeaders,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	allowMethods := strings.Join(cfg.AllowMethods, ", ")
	allowHeaders := strings.Join(cfg.AllowHeaders, ", ")
	maxAge := ""
	if cfg.MaxAge > 0 {
		maxAge = strconv.Itoa(int(cfg.MaxAge.Seconds()))
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			h := c.Response().Header()
			h.Set("Access-Control-Allow-Origin", cfg.AllowOrigin)
			h.Set("Access-Control-Allow-Headers", allowHeaders)
			h.Set("Access-Control-Allow-Methods", allowMethods)

			if c.Request().Method != http.MethodOptions {
				return next(c)
			}

			if maxAge != "" {
				h.Set("Access-Control-Max-Age", maxAge)
			}
			return c.NoContent(http.StatusNoContent)
		}
	}
}
