package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Port    string `env:"PORT" envDefault:"8080"`
	GinMode string `env:"GIN_MODE" envDefault:"release"`

	DBDriver    string `env:"DB_DRIVER" envDefault:"postgres"`
	PostgresURL string `env:"POSTGRES_URL"`
	SqlitePath  string `env:"SQLITE_PATH" envDefault:"tourproof.db"`

	JWTSecret   string   `env:"JWT_SECRET"`
	AdminEmails []string `env:"ADMIN_EMAILS" envSeparator:","`

	// Point constants are copied into the ledger settings on first start and
	// never change afterwards.
	CreationPoints int64  `env:"CREATION_POINTS" envDefault:"10"`
	CheckInPoints  int64  `env:"CHECKIN_POINTS" envDefault:"5"`
	VoteThreshold  uint64 `env:"VOTE_THRESHOLD" envDefault:"3"`

	RateLimitPerMinute int `env:"RATE_LIMIT_PER_MINUTE" envDefault:"120"`
	RateLimitBurst     int `env:"RATE_LIMIT_BURST" envDefault:"20"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	SMTP SMTPConfig `envPrefix:"SMTP_"`
}

type SMTPConfig struct {
	Host       string `env:"HOST"`
	Port       int    `env:"PORT" envDefault:"587"`
	Username   string `env:"USERNAME"`
	Password   string `env:"PASSWORD"`
	From       string `env:"FROM" envDefault:"no-reply@tourproof.app"`
	FromName   string `env:"FROM_NAME" envDefault:"Tourproof"`
	AppBaseURL string `env:"APP_BASE_URL" envDefault:"https://tourproof.app"`
}

// Load reads an optional .env file and then parses the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return Parse()
}

// Parse builds a Config from the current environment only.
func Parse() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.DBDriver {
	case "postgres":
		if c.PostgresURL == "" {
			return errors.New("config: POSTGRES_URL is required for the postgres driver")
		}
	case "sqlite":
		if c.SqlitePath == "" {
			return errors.New("config: SQLITE_PATH is required for the sqlite driver")
		}
	default:
		return fmt.Errorf("config: unsupported DB_DRIVER %q", c.DBDriver)
	}
	if c.JWTSecret == "" {
		return errors.New("config: JWT_SECRET is required")
	}
	if c.CreationPoints <= 0 || c.CheckInPoints <= 0 {
		return errors.New("config: point constants must be positive")
	}
	if c.VoteThreshold == 0 {
		return errors.New("config: VOTE_THRESHOLD must be at least 1")
	}
	if c.RateLimitPerMinute <= 0 || c.RateLimitBurst <= 0 {
		return errors.New("config: rate limit settings must be positive")
	}
	return nil
}
