// Package config loads runtime configuration from the environment, with an
// optional .env file for local development.
package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds every tunable the service reads at startup.
type Config struct {
	AppEnv    string `envconfig:"APP_ENV" default:"development"`
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	StoreName string `envconfig:"STORE_NAME" default:"BALA GENERAL AND FANCY STORE"`

	HTTP  HTTPConfig
	Auth  AuthConfig
	Store StoreConfig
	Kafka KafkaConfig
	SMTP  SMTPConfig
}

// HTTPConfig holds HTTP server tunables.
type HTTPConfig struct {
	Addr         string        `envconfig:"HTTP_ADDR" default:":8080"`
	TimeoutRead  time.Duration `envconfig:"HTTP_TIMEOUT_READ" default:"15s"`
	TimeoutWrite time.Duration `envconfig:"HTTP_TIMEOUT_WRITE" default:"15s"`
	TimeoutIdle  time.Duration `envconfig:"HTTP_TIMEOUT_IDLE" default:"60s"`
}

// AuthConfig holds token signing and login behavior.
type AuthConfig struct {
	JWTSecret string        `envconfig:"JWT_SECRET" required:"true"`
	JWTExpiry time.Duration `envconfig:"JWT_EXPIRY" default:"24h"`
	// Simulated latency on login and federated login, kept from the
	// original flow so the UI's loading states stay exercised.
	Latency time.Duration `envconfig:"AUTH_LATENCY" default:"500ms"`
}

// StoreConfig selects and configures the persistence backend.
type StoreConfig struct {
	// Backend is one of: memory, file, postgres, redis.
	Backend     string `envconfig:"STORE_BACKEND" default:"file"`
	DataDir     string `envconfig:"STORE_DATA_DIR" default:"./data"`
	QuotaBytes  int64  `envconfig:"STORE_QUOTA_BYTES" default:"5242880"`
	PostgresDSN string `envconfig:"STORE_POSTGRES_DSN"`
	RedisAddr   string `envconfig:"STORE_REDIS_ADDR" default:"localhost:6379"`
	RedisPrefix string `envconfig:"STORE_REDIS_PREFIX" default:"bala-store"`
}

// KafkaConfig configures the order event stream. Empty brokers disable it.
type KafkaConfig struct {
	Brokers []string `envconfig:"KAFKA_BROKERS"`
	Topic   string   `envconfig:"KAFKA_TOPIC" default:"order-events"`
}

// SMTPConfig configures the mail relay used by cmd/notifier.
type SMTPConfig struct {
	Host string `envconfig:"SMTP_HOST" default:"localhost"`
	Port string `envconfig:"SMTP_PORT" default:"1025"`
	From string `envconfig:"SMTP_FROM" default:"noreply@example.com"`
}

// Load reads .env if present, then the environment.
func Load() (*Config, error) {
	// Ignore a missing .env; real deployments set the environment directly.
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("process configuration: %w", err)
	}

	// envconfig's required tag only rejects an unset variable, an empty
	// JWT_SECRET still slips through it.
	if cfg.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	switch cfg.Store.Backend {
	case "memory", "file", "postgres", "redis":
	default:
		return nil, fmt.Errorf("unknown STORE_BACKEND %q", cfg.Store.Backend)
	}
	if cfg.Store.Backend == "postgres" && cfg.Store.PostgresDSN == "" {
		return nil, fmt.Errorf("STORE_POSTGRES_DSN is required with the postgres backend")
	}
	return &cfg, nil
}

// IsDevelopment reports whether the service runs with developer ergonomics
// such as pretty console logs.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}
