// Package config reads the server's settings from the environment.
package config

import (
	"net"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/anuptiwari/portfolio/internal/contact"
)

// SMTP locates the relay contact submissions are forwarded through. The
// variable names predate the rest of the configuration and are kept as is.
type SMTP struct {
	Host string `env:"SMTP_HOST" envDefault:"smtp.gmail.com"`
	Port string `env:"SMTP_PORT" envDefault:"587" validate:"numeric"`
	User string `env:"SMTP_USER"`
	Pass string `env:"SMTP_PASS"`
	To   string `env:"TO_EMAIL"`
}

// Config is the complete server configuration.
type Config struct {
	Host string `env:"HOST"`
	Port string `env:"PORT" envDefault:"8080" validate:"required,numeric"`

	ContentPath  string `env:"PORTFOLIO_CONTENT"`
	ResumePath   string `env:"PORTFOLIO_RESUME"`
	DatabasePath string `env:"PORTFOLIO_DB_PATH" envDefault:"portfolio.db"`

	SubmitDelay     time.Duration `env:"PORTFOLIO_SUBMIT_DELAY" envDefault:"2s" validate:"gte=0s"`
	RotateInterval  time.Duration `env:"PORTFOLIO_ROTATE_INTERVAL" envDefault:"3s" validate:"gt=0s"`
	ScrollThreshold float64       `env:"PORTFOLIO_SCROLL_THRESHOLD" envDefault:"50" validate:"gte=0"`
	AttachTimeout   time.Duration `env:"PORTFOLIO_ATTACH_TIMEOUT" envDefault:"30s" validate:"gt=0s"`
	MaxVisits       int           `env:"PORTFOLIO_MAX_VISITS" envDefault:"1000" validate:"gt=0"`

	// RateLimit is the sustained live events per second allowed per client.
	RateLimit float64 `env:"PORTFOLIO_RATE_LIMIT" envDefault:"30" validate:"gt=0"`
	RateBurst int     `env:"PORTFOLIO_RATE_BURST" envDefault:"60" validate:"gt=0"`

	VisitorRetention time.Duration `env:"PORTFOLIO_VISITOR_RETENTION" envDefault:"8760h" validate:"gt=0s"`
	HashSalt         string        `env:"PORTFOLIO_HASH_SALT"`

	AdminUsername string        `env:"ADMIN_USERNAME" envDefault:"admin"`
	AdminPassword string        `env:"ADMIN_PASSWORD"`
	SessionSecret string        `env:"PORTFOLIO_SESSION_SECRET"`
	SessionTTL    time.Duration `env:"PORTFOLIO_SESSION_TTL" envDefault:"24h" validate:"gt=0s"`

	OTelEndpoint string `env:"PORTFOLIO_OTEL_ENDPOINT"`

	SMTP SMTP
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Load parses the environment and validates the result.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "parse env")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(err, "invalid configuration")
	}
	return nil
}

// Addr is the listen address.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

// AdminEnabled reports whether the admin area can be logged into.
func (c Config) AdminEnabled() bool {
	return c.AdminPassword != ""
}

// MailEnabled reports whether submissions should be emailed.
func (c Config) MailEnabled() bool {
	return c.SMTP.User != "" && c.SMTP.Pass != ""
}

// SMTPConfig converts the relay settings for the contact mailer.
func (c Config) SMTPConfig() contact.SMTPConfig {
	return contact.SMTPConfig{
		Host: c.SMTP.Host,
		Port: c.SMTP.Port,
		User: c.SMTP.User,
		Pass: c.SMTP.Pass,
		To:   c.SMTP.To,
	}
}
