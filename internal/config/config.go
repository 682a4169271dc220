package config

import (
	"fmt"

	pkgconfig "github.com/adil24689/fashion-haven-hub-sub000/pkg/config"
	"github.com/adil24689/fashion-haven-hub-sub000/pkg/database"
)

// Config holds all configuration for the storefront service.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort int `env:"STOREFRONT_HTTP_PORT" envDefault:"8010"`

	// Postgres
	PostgresHost    string `env:"POSTGRES_HOST" envDefault:"localhost"`
	PostgresPort    int    `env:"POSTGRES_PORT" envDefault:"5432"`
	PostgresUser    string `env:"POSTGRES_USER" envDefault:"storefront"`
	PostgresPass    string `env:"POSTGRES_PASSWORD" envDefault:"storefront_secret"`
	PostgresDB      string `env:"POSTGRES_DB" envDefault:"storefront"`
	PostgresSSLMode string `env:"POSTGRES_SSLMODE" envDefault:"disable"`

	// Redis (guest session snapshots)
	RedisAddr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`

	// Guest snapshot TTL in hours (default: 30 days)
	GuestTTL int `env:"GUEST_TTL_HOURS" envDefault:"720"`

	// Kafka
	KafkaBrokers []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092" envSeparator:","`

	// Media storage: "memory" for development, "gcs" for production.
	MediaBackend string `env:"MEDIA_BACKEND" envDefault:"memory"`
	MediaBaseURL string `env:"MEDIA_BASE_URL" envDefault:"http://localhost:8010"`
	GCSBucket    string `env:"GCS_BUCKET" envDefault:""`

	// Tracing
	TracingEnabled bool   `env:"TRACING_ENABLED" envDefault:"false"`
	OTLPEndpoint   string `env:"OTLP_ENDPOINT" envDefault:"localhost:4318"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load storefront config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate checks configuration invariants.
func (c *Config) validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}
	if c.GuestTTL < 1 {
		return fmt.Errorf("invalid guest TTL hours: %d", c.GuestTTL)
	}
	switch c.MediaBackend {
	case "memory":
	case "gcs":
		if c.GCSBucket == "" {
			return fmt.Errorf("GCS_BUCKET is required when MEDIA_BACKEND is gcs")
		}
	default:
		return fmt.Errorf("unknown media backend: %q", c.MediaBackend)
	}
	return nil
}

// Postgres returns the pool configuration for the configured database.
func (c *Config) Postgres() *database.PostgresConfig {
	pg := database.DefaultPostgresConfig()
	pg.Host = c.PostgresHost
	pg.Port = c.PostgresPort
	pg.User = c.PostgresUser
	pg.Password = c.PostgresPass
	pg.DBName = c.PostgresDB
	pg.SSLMode = c.PostgresSSLMode
	return &pg
}
