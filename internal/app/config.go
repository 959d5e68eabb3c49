package app

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/yungbote/planbridge-backend/internal/data/db"
	"github.com/yungbote/planbridge-backend/internal/observability"
)

type Config struct {
	Port            string        `env:"PORT" envDefault:"8000"`
	LogMode         string        `env:"LOG_MODE" envDefault:"development"`
	GinMode         string        `env:"GIN_MODE" envDefault:"release"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"15s"`

	MaxBodyBytes      int64    `env:"MAX_BODY_BYTES" envDefault:"1048576"`
	ExposeErrorDetail bool     `env:"EXPOSE_ERROR_DETAIL" envDefault:"false"`
	CORSAllowOrigins  []string `env:"CORS_ALLOW_ORIGINS" envSeparator:","`

	AutoMigrate bool `env:"DB_AUTO_MIGRATE" envDefault:"true"`

	MetricsEnabled        bool          `env:"METRICS_ENABLED" envDefault:"true"`
	MetricsScrapeInterval time.Duration `env:"METRICS_SCRAPE_INTERVAL" envDefault:"10s"`

	Postgres db.PostgresConfig        `envPrefix:"POSTGRES_"`
	Otel     observability.OtelConfig
}

// LoadEnv loads whichever of envFiles exist; variables already set in the
// process environment win.
func LoadEnv(envFiles []string) (int, error) {
	existing := make([]string, 0, len(envFiles))
	for _, file := range envFiles {
		if _, err := os.Stat(file); err == nil {
			existing = append(existing, file)
		}
	}
	if len(existing) == 0 {
		return 0, nil
	}
	return len(existing), godotenv.Load(existing...)
}

// LoadConfig reads .env and .env.local, then the process environment.
func LoadConfig() (Config, error) {
	if _, err := LoadEnv([]string{".env", ".env.local"}); err != nil {
		return Config{}, fmt.Errorf("load env files: %w", err)
	}
	return ParseConfig()
}

func ParseConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.CORSAllowOrigins = trimAll(cfg.CORSAllowOrigins)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Port) == "" {
		errs = append(errs, errors.New("PORT must not be empty"))
	}
	switch c.GinMode {
	case "debug", "release", "test":
	default:
		errs = append(errs, fmt.Errorf("GIN_MODE %q must be debug, release or test", c.GinMode))
	}
	if c.MaxBodyBytes <= 0 {
		errs = append(errs, errors.New("MAX_BODY_BYTES must be positive"))
	}
	if c.ShutdownTimeout <= 0 {
		errs = append(errs, errors.New("SHUTDOWN_TIMEOUT must be positive"))
	}
	if c.Postgres.DSN == "" && strings.TrimSpace(c.Postgres.Host) == "" {
		errs = append(errs, errors.New("POSTGRES_HOST or POSTGRES_DSN is required"))
	}
	if c.Postgres.MaxOpenConns < 0 || c.Postgres.MaxIdleConns < 0 {
		errs = append(errs, errors.New("POSTGRES pool sizes must not be negative"))
	}
	if c.Otel.SampleRatio < 0 || c.Otel.SampleRatio > 1 {
		errs = append(errs, errors.New("OTEL_SAMPLER_RATIO must be within [0,1]"))
	}
	return errors.Join(errs...)
}

func (c Config) Addr() string {
	if strings.Contains(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}

func trimAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
