package reminders

import "errors"

var (
	// ErrNotOverdue is returned for a client whose due date has not passed.
	ErrNotOverdue = errors.New("reminders: client is not overdue")

	// ErrChannelUnsupported is returned when the current step uses a channel
	// with no configured provider.
	ErrChannelUnsupported = errors.New("reminders: channel has no provider")

	// ErrNoLegalRecipient is returned for a legal referral when no legal team
	// address is configured.
	ErrNoLegalRecipient = errors.New("reminders: legal team email is not configured")
)
