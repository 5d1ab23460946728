package templates

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/quickwinfinance/duesflow/pkg/dues"
	"github.com/quickwinfinance/duesflow/pkg/logger"
	"github.com/quickwinfinance/duesflow/pkg/mailer"
	"github.com/quickwinfinance/duesflow/pkg/sanitizer"
	"github.com/quickwinfinance/duesflow/pkg/store"
	"github.com/quickwinfinance/duesflow/pkg/validator"
)

const (
	defaultDateLayout = "02/01/2006"
	defaultBrand      = "Quick Win Finance"

	maxSubjectLen = 200
	maxContentLen = 5000
)

// Update is the editable part of a template.
type Update struct {
	Subject string `json:"subject"`
	Content string `json:"content"`
}

// Rendered is a template with a client's values substituted.
type Rendered struct {
	TemplateID string       `json:"templateId"`
	Channel    dues.Channel `json:"channel"`
	Subject    string       `json:"subject"`
	Text       string       `json:"text"`
	HTML       string       `json:"html"`
}

// Service reads, edits and renders the escalation templates.
type Service struct {
	store      store.Store[Template]
	renderer   *mailer.Renderer
	amounts    *dues.AmountFormatter
	logger     *slog.Logger
	defaults   map[string]Template
	order      []string
	dateLayout string
	brand      string
}

// Option configures a Service.
type Option func(*Service)

// WithDateLayout sets the time layout used for [DUE_DATE]. Default: 02/01/2006.
func WithDateLayout(layout string) Option {
	return func(s *Service) {
		if layout != "" {
			s.dateLayout = layout
		}
	}
}

// WithBrand sets the name shown in the HTML layout header.
func WithBrand(brand string) Option {
	return func(s *Service) {
		if brand != "" {
			s.brand = brand
		}
	}
}

// WithLogger sets the service logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewService creates a template service over st. Call Seed before serving
// so the store holds every default.
func NewService(st store.Store[Template], amounts *dues.AmountFormatter, opts ...Option) (*Service, error) {
	defaults, err := Defaults()
	if err != nil {
		return nil, err
	}

	s := &Service{
		store:      st,
		amounts:    amounts,
		logger:     logger.NewNope(),
		defaults:   make(map[string]Template, len(defaults)),
		dateLayout: defaultDateLayout,
		brand:      defaultBrand,
	}
	for _, t := range defaults {
		s.defaults[t.ID] = t
		s.order = append(s.order, t.ID)
	}
	for _, opt := range opts {
		opt(s)
	}

	s.renderer = mailer.NewRenderer(assets, mailer.RendererConfig{})

	return s, nil
}

// Seed stores the defaults for ids that have no stored version yet.
func (s *Service) Seed(ctx context.Context) error {
	if err := store.Seed(ctx, s.store, s.defaults); err != nil {
		return fmt.Errorf("templates: seed: %w", err)
	}
	return nil
}

// List returns every template in escalation-flow order.
func (s *Service) List(ctx context.Context) ([]Template, error) {
	out := make([]Template, 0, len(s.order))
	for _, id := range s.order {
		t, err := s.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

// Get returns the stored template, falling back to the default when the
// store has none.
func (s *Service) Get(ctx context.Context, id string) (Template, error) {
	def, ok := s.defaults[id]
	if !ok {
		return Template{}, ErrTemplateNotFound
	}

	t, err := s.store.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return def, nil
	}
	if err != nil {
		return Template{}, fmt.Errorf("templates: get %s: %w", id, err)
	}
	return t, nil
}

// Update replaces subject and content of a template. HTML is stripped from
// both before validation. Email templates need a subject; WhatsApp
// templates must not have one.
func (s *Service) Update(ctx context.Context, id string, in Update) (Template, error) {
	t, err := s.Get(ctx, id)
	if err != nil {
		return Template{}, err
	}

	subject := sanitizer.PlainText(in.Subject)
	content := sanitizer.PlainText(in.Content)

	isEmail := t.Channel == dues.ChannelEmail
	if err := validator.Apply(
		validator.RequiredString("content", content),
		validator.MaxLenString("content", content, maxContentLen),
		validator.When(isEmail, validator.RequiredString("subject", subject)),
		validator.When(!isEmail, validator.EmptyString("subject", subject)),
		validator.MaxLenString("subject", subject, maxSubjectLen),
	); err != nil {
		return Template{}, err
	}

	t.Subject = subject
	t.Content = content
	t.Variables = Variables(subject + "\n" + content)

	if err := s.store.Set(ctx, id, t); err != nil {
		return Template{}, fmt.Errorf("templates: save %s: %w", id, err)
	}

	s.logger.InfoContext(ctx, "template updated",
		slog.String("template_id", id),
		slog.Any("variables", t.Variables),
	)
	return t, nil
}

// Render substitutes client's values into template id and produces the
// subject, plain text and HTML body.
func (s *Service) Render(ctx context.Context, id string, client dues.ClientDue, now time.Time) (Rendered, error) {
	t, err := s.Get(ctx, id)
	if err != nil {
		return Rendered{}, err
	}

	values := ValuesFor(client, now, s.amounts, s.dateLayout)
	subject := values.Substitute(t.Subject)
	text := values.Substitute(t.Content)

	res, err := s.renderer.Render("", subject, text, map[string]any{
		"brand":   s.brand,
		"channel": string(t.Channel),
	})
	if err != nil {
		return Rendered{}, fmt.Errorf("templates: render %s: %w", id, err)
	}

	return Rendered{
		TemplateID: t.ID,
		Channel:    t.Channel,
		Subject:    subject,
		Text:       text,
		HTML:       res.HTML,
	}, nil
}
