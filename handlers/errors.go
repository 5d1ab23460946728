package handlers

import (
	"errors"
	"net/http"

	"github.com/quickwinfinance/duesflow"
	"github.com/quickwinfinance/duesflow/middlewares"
	"github.com/quickwinfinance/duesflow/pkg/dispatch"
	"github.com/quickwinfinance/duesflow/pkg/validator"
)

// errorResponse is the failure envelope every API error is rendered with.
type errorResponse struct {
	Details any    `json:"details,omitempty"`
	Code    string `json:"code,omitempty"`
	Error   string `json:"error"`
	Success bool   `json:"success"`
}

// ErrorHandler renders handler and middleware errors as JSON failure envelopes.
// Messages of unexpected errors are not exposed.
func ErrorHandler(c duesflow.Context, err error) error {
	status, resp := classify(err)
	if status >= http.StatusInternalServerError {
		c.LogError("request failed", "status", status, "error", err)
	}
	return c.JSON(status, resp)
}

// NotFound answers unknown routes.
func NotFound(c duesflow.Context) error {
	return duesflow.ErrNotFound("route not found")
}

// MethodNotAllowed answers known routes called with the wrong method.
func MethodNotAllowed(c duesflow.Context) error {
	return duesflow.ErrMethodNotAllowed("method not allowed")
}

func classify(err error) (int, errorResponse) {
	if he := duesflow.AsHTTPError(err); he != nil {
		return he.Code, errorResponse{Error: he.Message, Code: he.ErrorCode, Details: he.Details}
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return http.StatusBadRequest, errorResponse{Error: verrs.Error(), Details: verrs}
	}

	switch {
	case middlewares.IsTimeoutError(err):
		return http.StatusGatewayTimeout, errorResponse{Error: "request timed out"}
	case middlewares.IsPanicError(err):
		return http.StatusInternalServerError, errorResponse{Error: "internal server error"}
	case dispatch.IsValidationError(err), dispatch.IsConfigurationError(err), dispatch.IsProviderError(err):
		return dispatch.StatusCode(err), errorResponse{Error: err.Error()}
	}

	return http.StatusInternalServerError, errorResponse{Error: "internal server error"}
}
