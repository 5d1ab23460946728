package mailer

import "context"

// Sender is the capability an email provider exposes.
type Sender interface {
	// Send delivers one prepared email and returns the provider's message ID.
	// Implementations make a single attempt and never retry.
	Send(ctx context.Context, email *Email) (string, error)
}

// SenderFunc adapts a function to the Sender interface.
type SenderFunc func(ctx context.Context, email *Email) (string, error)

// Send implements Sender.
func (f SenderFunc) Send(ctx context.Context, email *Email) (string, error) {
	return f(ctx, email)
}
