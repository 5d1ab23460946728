package handlers

import (
	"net/http"

	"github.com/quickwinfinance/duesflow"
	"github.com/quickwinfinance/duesflow/pkg/dues"
)

// recentActionsLimit caps the dashboard's recent actions list.
const recentActionsLimit = 5

// DashboardHandler serves the dashboard summary and the escalation flow.
type DashboardHandler struct {
	repo    dues.Repository
	amounts *dues.AmountFormatter
	now     dues.Clock
}

func NewDashboard(repo dues.Repository, amounts *dues.AmountFormatter, now dues.Clock) *DashboardHandler {
	return &DashboardHandler{repo: repo, amounts: amounts, now: now}
}

func (h *DashboardHandler) Routes(r duesflow.Router) {
	r.GET("/api/dashboard", h.dashboard)
	r.GET("/api/flow", h.flow)
}

func (h *DashboardHandler) dashboard(c duesflow.Context) error {
	clients, err := h.repo.List(c.Context())
	if err != nil {
		return err
	}
	s := dues.Summarize(clients, h.now(), recentActionsLimit)
	return c.JSON(http.StatusOK, newDashboardView(s, h.amounts))
}

func (h *DashboardHandler) flow(c duesflow.Context) error {
	clients, err := h.repo.List(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dues.FlowStats(clients, h.now))
}
