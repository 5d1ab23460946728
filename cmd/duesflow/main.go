// Command duesflow serves the collections dashboard API and the send-email
// function.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	_ "time/tzdata"

	goredis "github.com/redis/go-redis/v9"

	"github.com/quickwinfinance/duesflow"
	"github.com/quickwinfinance/duesflow/handlers"
	"github.com/quickwinfinance/duesflow/middlewares"
	"github.com/quickwinfinance/duesflow/pkg/dispatch"
	"github.com/quickwinfinance/duesflow/pkg/dues"
	"github.com/quickwinfinance/duesflow/pkg/logger"
	"github.com/quickwinfinance/duesflow/pkg/mailer"
	"github.com/quickwinfinance/duesflow/pkg/mailer/resend"
	"github.com/quickwinfinance/duesflow/pkg/redis"
	"github.com/quickwinfinance/duesflow/pkg/reminders"
	"github.com/quickwinfinance/duesflow/pkg/store"
	"github.com/quickwinfinance/duesflow/pkg/templates"
)

func main() {
	if err := run(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "duesflow: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log, flush := logger.NewWithSentry(cfg.Log, middlewares.RequestIDExtractor())
	log = log.With(slog.String("component", "duesflow"))

	runOpts := []duesflow.RunOption{
		duesflow.Logger(log),
		duesflow.ShutdownTimeout(cfg.ShutdownTimeout),
	}
	var healthOpts []duesflow.HealthOption

	var st store.Store[templates.Template] = store.NewMemory[templates.Template]()
	if cfg.RedisURL != "" {
		var client goredis.UniversalClient
		client, err = redis.Open(ctx, cfg.RedisURL, redis.WithLogger(log))
		if err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		st = store.NewRedis[templates.Template](client, nil, store.WithPrefix("duesflow:templates"))
		healthOpts = append(healthOpts, duesflow.WithReadinessCheck("redis", redis.Healthcheck(client)))
		runOpts = append(runOpts, duesflow.ShutdownHook(redis.Shutdown(client)))
	}
	runOpts = append(runOpts, duesflow.ShutdownHook(flush))

	svc, err := newServices(ctx, cfg, log, st)
	if err != nil {
		return err
	}

	app := newApp(cfg, log, svc, healthOpts...)
	return app.Run(cfg.HTTPAddr, runOpts...)
}

type services struct {
	repo       dues.Repository
	amounts    *dues.AmountFormatter
	clock      dues.Clock
	templates  *templates.Service
	dispatcher *dispatch.Dispatcher
	reminders  *reminders.Service
}

func newServices(ctx context.Context, cfg Config, log *slog.Logger, st store.Store[templates.Template]) (*services, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	clock := dues.SystemClock(loc)

	amounts, err := dues.NewAmountFormatter(cfg.CurrencyLocale, cfg.CurrencySymbol)
	if err != nil {
		return nil, fmt.Errorf("currency format: %w", err)
	}

	repo, err := dues.NewFixtureRepository()
	if err != nil {
		return nil, err
	}

	tmpl, err := templates.NewService(st, amounts, templates.WithLogger(log))
	if err != nil {
		return nil, err
	}
	if err := tmpl.Seed(ctx); err != nil {
		return nil, fmt.Errorf("seed templates: %w", err)
	}

	dispatcher, err := dispatch.New(dispatch.Config{APIKey: cfg.Resend.APIKey}, func(key string) (mailer.Sender, error) {
		rc := cfg.Resend
		rc.APIKey = key
		s, err := resend.New(rc)
		if err != nil {
			return nil, err
		}
		return s, nil
	}, dispatch.WithLogger(log))
	if err != nil {
		return nil, err
	}
	if !dispatcher.Configured() {
		log.Warn("RESEND_API_KEY is not set, email dispatch will answer with a configuration error")
	}

	rem := reminders.New(
		reminders.Config{LegalTeamEmail: cfg.LegalTeamEmail},
		repo, tmpl, dispatcher, amounts,
		reminders.WithClock(clock),
		reminders.WithLogger(log),
	)

	return &services{
		repo:       repo,
		amounts:    amounts,
		clock:      clock,
		templates:  tmpl,
		dispatcher: dispatcher,
		reminders:  rem,
	}, nil
}

func newApp(cfg Config, log *slog.Logger, s *services, health ...duesflow.HealthOption) *duesflow.App {
	return duesflow.New(
		duesflow.WithCustomLogger(log),
		duesflow.WithMiddleware(
			middlewares.RequestID(),
			middlewares.RequestLogger(),
			middlewares.CORS(),
			middlewares.Recover(),
			middlewares.Timeout(cfg.RequestTimeout),
		),
		duesflow.WithErrorHandler(handlers.ErrorHandler),
		duesflow.WithNotFoundHandler(handlers.NotFound),
		duesflow.WithMethodNotAllowedHandler(handlers.MethodNotAllowed),
		duesflow.WithHealthChecks(health...),
		duesflow.WithHandlers(
			handlers.NewDispatch(s.dispatcher),
			handlers.NewClients(s.repo, s.reminders, s.amounts, s.clock),
			handlers.NewDashboard(s.repo, s.amounts, s.clock),
			handlers.NewTemplates(s.templates, s.repo, s.clock),
		),
	)
}
