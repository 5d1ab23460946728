// Package dispatch sends one prepared email through the configured provider
// and shapes the outcome into the response envelope.
//
//	d, err := dispatch.New(dispatch.Config{APIKey: key}, func(k string) (mailer.Sender, error) {
//	    return resend.New(resend.Config{APIKey: k, SenderEmail: from, SenderName: name})
//	}, dispatch.WithLogger(log))
//
//	status, result := d.Handle(ctx, dispatch.Request{
//	    To: "ana@example.com", Subject: "Payment reminder", HTML: "<p>...</p>",
//	})
//
// Failures are typed. ValidationError maps to 400; ConfigurationError and
// ProviderError map to 500. There is no retry and no idempotency: each
// successful call sends one email.
package dispatch
