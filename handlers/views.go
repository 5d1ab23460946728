package handlers

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/quickwinfinance/duesflow/pkg/dues"
)

type clientView struct {
	LastActionAt    *time.Time            `json:"lastActionAt,omitempty"`
	Amount          decimal.Decimal       `json:"amount"`
	ID              string                `json:"id"`
	Name            string                `json:"name"`
	Email           string                `json:"email"`
	Phone           string                `json:"phone"`
	Invoice         string                `json:"invoice"`
	AmountFormatted string                `json:"amountFormatted"`
	DueDate         string                `json:"dueDate"`
	Status          dues.EscalationStatus `json:"status"`
	StatusLabel     string                `json:"statusLabel"`
	StatusIcon      string                `json:"statusIcon"`
	PolicyStatus    dues.EscalationStatus `json:"policyStatus"`
	DaysOverdue     int                   `json:"daysOverdue"`
}

func newClientView(c dues.ClientDue, now time.Time, amounts *dues.AmountFormatter) clientView {
	days := c.DaysOverdue(now)
	return clientView{
		ID:              c.ID,
		Name:            c.Name,
		Email:           c.Email,
		Phone:           c.Phone,
		Invoice:         c.Invoice,
		Amount:          c.Amount,
		AmountFormatted: amounts.Format(c.Amount),
		DueDate:         c.DueDate.Format(dues.DateLayout),
		DaysOverdue:     days,
		Status:          c.Status,
		StatusLabel:     c.Status.Label(),
		StatusIcon:      c.Status.Icon(),
		PolicyStatus:    dues.PolicyStatus(days),
		LastActionAt:    c.LastActionAt,
	}
}

type recentActionView struct {
	At          time.Time             `json:"at"`
	ClientID    string                `json:"clientId"`
	ClientName  string                `json:"clientName"`
	Status      dues.EscalationStatus `json:"status"`
	StatusLabel string                `json:"statusLabel"`
	StatusIcon  string                `json:"statusIcon"`
	DaysOverdue int                   `json:"daysOverdue"`
}

type dashboardView struct {
	TotalOutstanding          decimal.Decimal    `json:"totalOutstanding"`
	TotalOutstandingFormatted string             `json:"totalOutstandingFormatted"`
	RecentActions             []recentActionView `json:"recentActions"`
	Overdue                   int                `json:"overdue"`
	EmailsSent                int                `json:"emailsSent"`
	WhatsAppSent              int                `json:"whatsappSent"`
	Legal                     int                `json:"legal"`
}

func newDashboardView(s dues.Summary, amounts *dues.AmountFormatter) dashboardView {
	actions := make([]recentActionView, 0, len(s.RecentActions))
	for _, a := range s.RecentActions {
		actions = append(actions, recentActionView{
			At:          a.At,
			ClientID:    a.ClientID,
			ClientName:  a.ClientName,
			Status:      a.Status,
			StatusLabel: a.Status.Label(),
			StatusIcon:  a.Status.Icon(),
			DaysOverdue: a.DaysOverdue,
		})
	}
	return dashboardView{
		TotalOutstanding:          s.TotalOutstanding,
		TotalOutstandingFormatted: amounts.Format(s.TotalOutstanding),
		RecentActions:             actions,
		Overdue:                   s.Overdue,
		EmailsSent:                s.EmailsSent,
		WhatsAppSent:              s.WhatsAppSent,
		Legal:                     s.Legal,
	}
}
