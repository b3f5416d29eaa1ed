// Package config loads runtime settings for the portfolio from the process
// environment and optional .env files.
package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is the full runtime configuration. Field names without a
// PORTFOLIO_ prefix keep the variable names earlier deployments used.
type Config struct {
	Port         string        `env:"PORT"                        envDefault:"8080"`
	Host         string        `env:"PORTFOLIO_HOST"`
	SiteURL      string        `env:"PORTFOLIO_SITE_URL"          envDefault:"http://localhost:8080"`
	ContentPath  string        `env:"PORTFOLIO_CONTENT"`
	WatchContent bool          `env:"PORTFOLIO_WATCH_CONTENT"`
	DatabasePath string        `env:"PORTFOLIO_DB"                envDefault:"portfolio.db"`
	Retention    time.Duration `env:"PORTFOLIO_VISITOR_RETENTION" envDefault:"8760h"`
	LogLevel     string        `env:"PORTFOLIO_LOG_LEVEL"         envDefault:"info"`
	Dev          bool          `env:"PORTFOLIO_DEV"`
	GinMode      string        `env:"GIN_MODE"                    envDefault:"release"`

	Contact ContactConfig
	Admin   AdminConfig
}

// ContactConfig controls how contact form submissions are delivered.
type ContactConfig struct {
	Delay    time.Duration `env:"PORTFOLIO_CONTACT_DELAY" envDefault:"1500ms"`
	SMTPHost string        `env:"SMTP_HOST"               envDefault:"smtp.gmail.com"`
	SMTPPort string        `env:"SMTP_PORT"               envDefault:"587"`
	SMTPUser string        `env:"SMTP_USER"`
	SMTPPass string        `env:"SMTP_PASS"`
	To       string        `env:"TO_EMAIL"`
}

// SMTPEnabled reports whether real mail delivery is configured.
func (c ContactConfig) SMTPEnabled() bool {
	return c.SMTPUser != "" && c.SMTPPass != "" && c.To != ""
}

// AdminConfig holds the admin area credentials. An empty password disables
// the admin area entirely.
type AdminConfig struct {
	Username string `env:"ADMIN_USERNAME" envDefault:"admin"`
	Password string `env:"ADMIN_PASSWORD"`
}

// Enabled reports whether the admin routes should be mounted.
func (a AdminConfig) Enabled() bool { return a.Password != "" }

const maxContactDelay = 30 * time.Second

// Load reads the optional env files into the process environment and parses
// the result. Files that do not exist are skipped.
func Load(envFiles ...string) (*Config, error) {
	for _, path := range envFiles {
		if path == "" {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
	}
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the values that cannot be expressed as struct tags.
func (c *Config) Validate() error {
	var errs []error
	port, err := strconv.Atoi(c.Port)
	if err != nil || port <= 0 || port > 65535 {
		errs = append(errs, fmt.Errorf("invalid port %q", c.Port))
	}
	if c.Contact.Delay < 0 || c.Contact.Delay > maxContactDelay {
		errs = append(errs, fmt.Errorf("contact delay %s out of range [0, %s]", c.Contact.Delay, maxContactDelay))
	}
	if c.Retention <= 0 {
		errs = append(errs, fmt.Errorf("visitor retention must be positive, got %s", c.Retention))
	}
	switch c.GinMode {
	case "debug", "release", "test":
	default:
		errs = append(errs, fmt.Errorf("unknown gin mode %q", c.GinMode))
	}
	return errors.Join(errs...)
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}
