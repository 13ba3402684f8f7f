package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name     string `envconfig:"APP_NAME" default:"fuelbook"`
		Port     int    `envconfig:"PORT" default:"8080"`
		LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
		// Store selects the persistence backend: "postgres" or "memory".
		Store string `envconfig:"STORE" default:"postgres"`
	}

	DB struct {
		Host            string        `envconfig:"DB_HOST" default:"localhost"`
		Port            int           `envconfig:"DB_PORT" default:"5432"`
		User            string        `envconfig:"DB_USER" default:"postgres"`
		Password        string        `envconfig:"DB_PASSWORD" default:""`
		Name            string        `envconfig:"DB_NAME" default:"fuelbook"`
		MaxOpenConns    int           `envconfig:"DB_MAX_OPEN_CONNS" default:"20"`
		MaxIdleConns    int           `envconfig:"DB_MAX_IDLE_CONNS" default:"5"`
		ConnMaxLifetime time.Duration `envconfig:"DB_CONN_MAX_LIFETIME" default:"30m"`
		LockTimeout     time.Duration `envconfig:"DB_LOCK_TIMEOUT" default:"2s"`
	}

	Server struct {
		Timeout         time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
		ShutdownTimeout time.Duration `envconfig:"SERVER_SHUTDOWN_TIMEOUT" default:"15s"`
		CORSOrigins     []string      `envconfig:"CORS_ORIGINS" default:"*"`
	}

	Inventory struct {
		AllowNegativeSales       bool `envconfig:"INVENTORY_ALLOW_NEGATIVE_SALES" default:"false"`
		AllowNegativeCorrections bool `envconfig:"INVENTORY_ALLOW_NEGATIVE_CORRECTIONS" default:"true"`
	}

	Ledger struct {
		AllowOverpayment bool `envconfig:"LEDGER_ALLOW_OVERPAYMENT" default:"false"`
	}

	Billing struct {
		Concurrency int `envconfig:"BILLING_CONCURRENCY" default:"4"`
	}

	Alert struct {
		WebhookURL     string        `envconfig:"ALERT_WEBHOOK_URL"`
		WebhookTimeout time.Duration `envconfig:"ALERT_WEBHOOK_TIMEOUT" default:"5s"`
	}

	Telemetry struct {
		OTLPEndpoint string `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	}

	// PolicyFile points at the YAML file with variance cutoffs and payment
	// type rules. Built-in defaults apply when it is empty.
	PolicyFile string `envconfig:"POLICY_FILE"`
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	switch cfg.App.Store {
	case "postgres", "memory":
	default:
		return nil, fmt.Errorf("unknown STORE %q: want postgres or memory", cfg.App.Store)
	}

	return &cfg, nil
}
