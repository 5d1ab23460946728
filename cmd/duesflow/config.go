package main

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/quickwinfinance/duesflow/pkg/logger"
	"github.com/quickwinfinance/duesflow/pkg/mailer/resend"
)

// Config is read once at start and passed to constructors.
type Config struct {
	Resend resend.Config
	Log    logger.Config

	HTTPAddr        string        `env:"HTTP_ADDR" envDefault:":8080"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`
	RequestTimeout  time.Duration `env:"REQUEST_TIMEOUT" envDefault:"30s"`

	// LegalTeamEmail receives the day-5 referral. Empty disables it.
	LegalTeamEmail string `env:"LEGAL_TEAM_EMAIL"`

	// RedisURL selects the Redis template store. Empty keeps templates in memory.
	RedisURL string `env:"REDIS_URL"`

	CurrencyLocale string `env:"CURRENCY_LOCALE" envDefault:"pt-BR"`
	CurrencySymbol string `env:"CURRENCY_SYMBOL" envDefault:"R$"`
	Timezone       string `env:"TIMEZONE" envDefault:"America/Sao_Paulo"`
}

// loadConfig loads an optional .env file and parses the environment.
func loadConfig(files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Location returns the business timezone used to compute days overdue.
func (c Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}
