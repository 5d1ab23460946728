package handlers

import (
	"errors"
	"net/http"

	"github.com/quickwinfinance/duesflow"
	"github.com/quickwinfinance/duesflow/pkg/dispatch"
)

// DispatchHandler serves the send-email function.
type DispatchHandler struct {
	dispatcher *dispatch.Dispatcher
}

// NewDispatch creates the send-email handler.
func NewDispatch(d *dispatch.Dispatcher) *DispatchHandler {
	return &DispatchHandler{dispatcher: d}
}

// Routes implements duesflow.Handler. The preflight is answered by the CORS
// middleware.
func (h *DispatchHandler) Routes(r duesflow.Router) {
	r.Route("/functions/v1", func(r duesflow.Router) {
		r.POST("/send-email", h.send)
	})
}

// send always answers with the dispatch envelope. A missing credential is
// reported before the body is read.
func (h *DispatchHandler) send(c duesflow.Context) error {
	var req dispatch.Request
	if h.dispatcher.Configured() {
		if err := c.DecodeJSON(&req); err != nil {
			msg := "request body must be valid JSON"
			if errors.Is(err, duesflow.ErrEmptyBody) {
				msg = "request body is empty"
			}
			return c.JSON(http.StatusBadRequest, dispatch.Failure(dispatch.NewValidationError(msg)))
		}
	}

	status, res := h.dispatcher.Handle(c.Context(), req)
	return c.JSON(status, res)
}
