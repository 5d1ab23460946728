package resend

import "github.com/quickwinfinance/duesflow/pkg/mailer"

// Config holds Resend email provider configuration.
// Embed this in your app config for env parsing with caarlos0/env.
type Config struct {
	APIKey      string `env:"RESEND_API_KEY"`
	SenderEmail string `env:"RESEND_FROM_EMAIL" envDefault:"noreply@brandlovrs.app"`
	SenderName  string `env:"RESEND_FROM_NAME" envDefault:"Quick Win Finance"`
	// BaseURL overrides the Resend API endpoint.
	BaseURL string `env:"RESEND_BASE_URL"`
}

// From returns the sender identity in "Name <email>" form.
func (c Config) From() string {
	return mailer.Recipient(c.SenderName, c.SenderEmail)
}
