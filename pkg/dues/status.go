package dues

import "strings"

// EscalationStatus is the last escalation step recorded for a client.
type EscalationStatus string

const (
	StatusPending      EscalationStatus = "pending"
	StatusEmailSent    EscalationStatus = "email_sent"
	StatusWhatsAppSent EscalationStatus = "whatsapp_sent"
	StatusLegal        EscalationStatus = "legal"
)

// Statuses lists every status in escalation order.
var Statuses = []EscalationStatus{StatusPending, StatusEmailSent, StatusWhatsAppSent, StatusLegal}

// ParseStatus maps a stored string to a status. Unknown values are pending.
func ParseStatus(s string) EscalationStatus {
	switch st := EscalationStatus(strings.ToLower(strings.TrimSpace(s))); st {
	case StatusEmailSent, StatusWhatsAppSent, StatusLegal:
		return st
	default:
		return StatusPending
	}
}

func (s EscalationStatus) String() string {
	return string(ParseStatus(string(s)))
}

// Label is the display text for the status.
func (s EscalationStatus) Label() string {
	switch ParseStatus(string(s)) {
	case StatusEmailSent:
		return "Email sent"
	case StatusWhatsAppSent:
		return "WhatsApp sent"
	case StatusLegal:
		return "Legal"
	default:
		return "Pending"
	}
}

// Icon is the display icon name for the status.
func (s EscalationStatus) Icon() string {
	switch ParseStatus(string(s)) {
	case StatusEmailSent:
		return "mail"
	case StatusWhatsAppSent:
		return "phone"
	case StatusLegal:
		return "alert-triangle"
	default:
		return "calendar"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s EscalationStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. It never fails.
func (s *EscalationStatus) UnmarshalText(text []byte) error {
	*s = ParseStatus(string(text))
	return nil
}

// PolicyStatus is the status the day-1/day-3/day-5 policy implies for a
// client that is daysOverdue days late.
func PolicyStatus(daysOverdue int) EscalationStatus {
	switch {
	case daysOverdue >= 5:
		return StatusLegal
	case daysOverdue >= 3:
		return StatusWhatsAppSent
	case daysOverdue >= 1:
		return StatusEmailSent
	default:
		return StatusPending
	}
}
