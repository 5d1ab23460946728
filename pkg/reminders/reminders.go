// Package reminders sends the email for a client's current escalation step.
package reminders

import (
	"context"
	"log/slog"
	"time"

	"github.com/quickwinfinance/duesflow/pkg/dispatch"
	"github.com/quickwinfinance/duesflow/pkg/dues"
	"github.com/quickwinfinance/duesflow/pkg/logger"
	"github.com/quickwinfinance/duesflow/pkg/mailer"
	"github.com/quickwinfinance/duesflow/pkg/templates"
)

// Renderer renders a template for a client.
type Renderer interface {
	Render(ctx context.Context, id string, client dues.ClientDue, now time.Time) (templates.Rendered, error)
}

// Dispatcher sends one prepared email.
type Dispatcher interface {
	Dispatch(ctx context.Context, req dispatch.Request) (dispatch.Result, error)
}

// Config holds the reminder recipients.
type Config struct {
	LegalTeamEmail string
}

// Service picks the flow step for a client, renders its template and
// dispatches it. Recorded client status is never changed.
type Service struct {
	clients    dues.Repository
	templates  Renderer
	dispatcher Dispatcher
	amounts    *dues.AmountFormatter
	now        dues.Clock
	logger     *slog.Logger
	cfg        Config
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the clock used to compute days overdue.
func WithClock(c dues.Clock) Option {
	return func(s *Service) {
		if c != nil {
			s.now = c
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates a reminder service.
func New(cfg Config, clients dues.Repository, tmpl Renderer, d Dispatcher, amounts *dues.AmountFormatter, opts ...Option) *Service {
	s := &Service{
		cfg:        cfg,
		clients:    clients,
		templates:  tmpl,
		dispatcher: d,
		amounts:    amounts,
		now:        dues.SystemClock(nil),
		logger:     logger.NewNope(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Send dispatches the reminder for client id. It returns
// dues.ErrClientNotFound, ErrNotOverdue, ErrChannelUnsupported,
// ErrNoLegalRecipient, or any error from the dispatcher.
func (s *Service) Send(ctx context.Context, id string) (dispatch.Result, error) {
	client, err := s.clients.Get(ctx, id)
	if err != nil {
		return dispatch.Result{}, err
	}

	now := s.now()
	days := client.DaysOverdue(now)
	step, ok := dues.StepFor(days)
	if !ok {
		return dispatch.Result{}, ErrNotOverdue
	}
	if step.Channel != dues.ChannelEmail {
		return dispatch.Result{}, ErrChannelUnsupported
	}

	to := client.Email
	if step.Recipient == "legal" {
		if s.cfg.LegalTeamEmail == "" {
			return dispatch.Result{}, ErrNoLegalRecipient
		}
		to = s.cfg.LegalTeamEmail
	}

	out, err := s.templates.Render(ctx, step.TemplateID, client, now)
	if err != nil {
		return dispatch.Result{}, err
	}

	tags := mailer.SimpleTags("reminder")
	tags["template"] = step.TemplateID

	s.logger.InfoContext(ctx, "sending reminder",
		slog.String("client_id", client.ID),
		slog.String("template_id", step.TemplateID),
		slog.Int("days_overdue", days),
	)

	return s.dispatcher.Dispatch(ctx, dispatch.Request{
		To:            to,
		Subject:       out.Subject,
		HTML:          out.HTML,
		ClientName:    client.Name,
		InvoiceNumber: client.Invoice,
		Amount:        dispatch.Text(s.amounts.Number(client.Amount)),
		DueDate:       client.DueDate.Format(dues.DateLayout),
		Tags:          tags,
	})
}
