package handlers

import (
	"errors"
	"net/http"

	"github.com/quickwinfinance/duesflow"
	"github.com/quickwinfinance/duesflow/pkg/dispatch"
	"github.com/quickwinfinance/duesflow/pkg/dues"
	"github.com/quickwinfinance/duesflow/pkg/reminders"
)

// ClientsHandler serves the client list and reminder sending.
type ClientsHandler struct {
	repo      dues.Repository
	reminders *reminders.Service
	amounts   *dues.AmountFormatter
	now       dues.Clock
}

// NewClients creates the clients handler. reminders may be nil, in which
// case the reminder route is not registered.
func NewClients(repo dues.Repository, rem *reminders.Service, amounts *dues.AmountFormatter, now dues.Clock) *ClientsHandler {
	return &ClientsHandler{repo: repo, reminders: rem, amounts: amounts, now: now}
}

func (h *ClientsHandler) Routes(r duesflow.Router) {
	r.Route("/api/clients", func(r duesflow.Router) {
		r.GET("/", h.list)
		r.GET("/{id}", h.get)
		if h.reminders != nil {
			r.POST("/{id}/reminders", h.sendReminder)
		}
	})
}

func (h *ClientsHandler) list(c duesflow.Context) error {
	clients, err := h.repo.List(c.Context())
	if err != nil {
		return err
	}

	now := h.now()
	matched := dues.Filter(clients, c.Query("q"))
	out := make([]clientView, 0, len(matched))
	for _, cl := range matched {
		out = append(out, newClientView(cl, now, h.amounts))
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ClientsHandler) get(c duesflow.Context) error {
	cl, err := h.repo.Get(c.Context(), c.Param("id"))
	if errors.Is(err, dues.ErrClientNotFound) {
		return duesflow.ErrNotFound("client not found", duesflow.WithError(err))
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newClientView(cl, h.now(), h.amounts))
}

// sendReminder answers with the dispatch envelope and status.
func (h *ClientsHandler) sendReminder(c duesflow.Context) error {
	res, err := h.reminders.Send(c.Context(), c.Param("id"))
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, res)
	case errors.Is(err, dues.ErrClientNotFound):
		return duesflow.ErrNotFound("client not found", duesflow.WithError(err))
	case errors.Is(err, reminders.ErrNotOverdue):
		return duesflow.ErrConflict("client is not overdue yet", duesflow.WithError(err))
	case errors.Is(err, reminders.ErrChannelUnsupported):
		return duesflow.ErrUnprocessable("the current escalation step is a WhatsApp message, which cannot be sent from here", duesflow.WithError(err))
	case errors.Is(err, reminders.ErrNoLegalRecipient):
		return c.JSON(http.StatusInternalServerError, dispatch.Failure(err))
	case dispatch.IsValidationError(err), dispatch.IsConfigurationError(err), dispatch.IsProviderError(err):
		return c.JSON(dispatch.StatusCode(err), dispatch.Failure(err))
	default:
		return err
	}
}
