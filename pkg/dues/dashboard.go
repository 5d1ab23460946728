package dues

import (
	"cmp"
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

// Summary aggregates the client list for the dashboard.
type Summary struct {
	TotalOutstanding decimal.Decimal
	RecentActions    []RecentAction
	Overdue          int
	EmailsSent       int
	WhatsAppSent     int
	Legal            int
}

// RecentAction is the last recorded escalation for one client.
type RecentAction struct {
	At          time.Time
	ClientID    string
	ClientName  string
	Status      EscalationStatus
	DaysOverdue int
}

// Summarize counts overdue clients and recorded statuses, totals the
// outstanding amount, and lists up to limit recent actions newest first.
// Clients without a recorded action are left out of RecentActions.
// A limit of zero or less returns every action.
func Summarize(clients []ClientDue, now time.Time, limit int) Summary {
	s := Summary{TotalOutstanding: decimal.Zero}
	for _, c := range clients {
		s.TotalOutstanding = s.TotalOutstanding.Add(c.Amount)
		days := c.DaysOverdue(now)
		if days > 0 {
			s.Overdue++
		}

		switch c.Status {
		case StatusEmailSent:
			s.EmailsSent++
		case StatusWhatsAppSent:
			s.WhatsAppSent++
		case StatusLegal:
			s.Legal++
		}

		if c.LastActionAt != nil {
			s.RecentActions = append(s.RecentActions, RecentAction{
				At:          *c.LastActionAt,
				ClientID:    c.ID,
				ClientName:  c.Name,
				Status:      c.Status,
				DaysOverdue: days,
			})
		}
	}

	slices.SortStableFunc(s.RecentActions, func(a, b RecentAction) int {
		return cmp.Compare(b.At.UnixNano(), a.At.UnixNano())
	})
	if limit > 0 && len(s.RecentActions) > limit {
		s.RecentActions = s.RecentActions[:limit]
	}
	return s
}
