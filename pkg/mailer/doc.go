// Package mailer defines the email provider capability and the HTML renderer
// used for outgoing messages.
//
// # Sender
//
// Providers implement Sender. Send makes exactly one delivery attempt and
// returns the provider's message ID:
//
//	sender := resend.New(resend.Config{
//	    APIKey:      cfg.ResendAPIKey,
//	    SenderEmail: "noreply@brandlovrs.app",
//	    SenderName:  "Quick Win Finance",
//	})
//	id, err := sender.Send(ctx, &mailer.Email{
//	    To:      []string{"ana@example.com"},
//	    Subject: "Payment reminder",
//	    HTML:    "<p>Hello</p>",
//	})
//
// SenderFunc adapts a plain function, which is handy in tests.
//
// # Renderer
//
// Renderer converts a markdown body to HTML with goldmark and wraps it in an
// html/template layout read from an fs.FS. Line breaks are kept as <br> so
// plain-text templates survive conversion. Layouts receive LayoutData:
//
//	<html><body><h1>{{.Subject}}</h1>{{.Content}}</body></html>
package mailer
