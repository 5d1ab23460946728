package dispatch

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/quickwinfinance/duesflow/pkg/logger"
	"github.com/quickwinfinance/duesflow/pkg/mailer"
	"github.com/quickwinfinance/duesflow/pkg/validator"
)

// Config holds the provider credential. It is read once at process start.
type Config struct {
	APIKey string
}

// SenderFactory builds the provider client for an API key.
type SenderFactory func(apiKey string) (mailer.Sender, error)

// Dispatcher turns a Request into exactly one provider send.
// It is safe for concurrent use; the sender is built once and never changes.
type Dispatcher struct {
	sender mailer.Sender
	logger *slog.Logger
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the logger for send and failure lines.
func WithLogger(l *slog.Logger) Option {
	return func(d *Dispatcher) {
		if l != nil {
			d.logger = l
		}
	}
}

// New creates a Dispatcher. The factory is only called when cfg.APIKey is
// set; without a key the dispatcher answers every request with a
// ConfigurationError.
func New(cfg Config, factory SenderFactory, opts ...Option) (*Dispatcher, error) {
	d := &Dispatcher{logger: logger.NewNope()}
	for _, opt := range opts {
		opt(d)
	}

	if cfg.APIKey == "" {
		return d, nil
	}
	sender, err := factory(cfg.APIKey)
	if err != nil {
		return nil, fmt.Errorf("dispatch: build sender: %w", err)
	}
	d.sender = sender
	return d, nil
}

// Configured reports whether a provider client exists.
func (d *Dispatcher) Configured() bool {
	return d.sender != nil
}

// Dispatch checks configuration, validates req and sends it once.
// Errors are *ConfigurationError, *ValidationError or *ProviderError.
func (d *Dispatcher) Dispatch(ctx context.Context, req Request) (Result, error) {
	if !d.Configured() {
		d.logger.ErrorContext(ctx, "resend api key is not configured")
		return Result{}, &ConfigurationError{Err: ErrNotConfigured}
	}

	if err := validator.ValidateStruct(req); err != nil {
		if ve := validator.ExtractValidationErrors(err); ve != nil {
			return Result{}, &ValidationError{Fields: ve}
		}
		return Result{}, NewValidationError(err.Error())
	}

	d.logger.InfoContext(ctx, "sending email",
		slog.String("to", req.To),
		slog.String("client_name", req.ClientName),
		slog.String("invoice", req.InvoiceNumber),
	)

	id, err := d.send(ctx, &mailer.Email{
		To:      []string{req.To},
		Subject: req.Subject,
		HTML:    req.HTML,
		Tags:    req.Tags,
	})
	if err != nil {
		d.logger.ErrorContext(ctx, "failed to send email",
			slog.String("to", req.To),
			slog.Any("error", err),
		)
		return Result{}, &ProviderError{Err: err}
	}

	d.logger.InfoContext(ctx, "email sent",
		slog.String("to", req.To),
		slog.String("email_id", id),
	)
	return Result{Success: true, EmailID: id, Message: confirmation(req)}, nil
}

// Handle runs Dispatch and shapes the outcome into an HTTP status and envelope.
func (d *Dispatcher) Handle(ctx context.Context, req Request) (int, Result) {
	res, err := d.Dispatch(ctx, req)
	if err != nil {
		return StatusCode(err), Failure(err)
	}
	return http.StatusOK, res
}

// send calls the provider and converts a panic into an error.
func (d *Dispatcher) send(ctx context.Context, email *mailer.Email) (id string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()
	return d.sender.Send(ctx, email)
}

func confirmation(req Request) string {
	if req.ClientName == "" {
		return fmt.Sprintf("Email sent to %s", req.To)
	}
	return fmt.Sprintf("Email sent to %s (%s)", req.ClientName, req.To)
}
