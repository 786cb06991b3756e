// Package config loads runtime settings from the environment and an optional .env file.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all runtime settings.
type Config struct {
	AppPort      string
	DBDriver     string // sqlite, postgres or mysql
	DatabaseDSN  string
	JWTSecret    string
	RabbitMQURL  string // empty disables cart events
	QueryTimeout time.Duration
	SessionTTL   time.Duration
	SeedCatalog  bool
	LogLevel     string
}

// SetDefaults registers the default value of every setting on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("DB_DRIVER", "sqlite")
	v.SetDefault("DATABASE_DSN", "file:cartx.db?cache=shared")
	v.SetDefault("JWT_SECRET", "change-me")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("QUERY_TIMEOUT", "5s")
	v.SetDefault("SESSION_TTL", "12h")
	v.SetDefault("SEED_CATALOG", true)
	v.SetDefault("LOG_LEVEL", "info")
}

// Load reads .env when present, then the environment, over the defaults.
func Load() (*Config, error) {
	_ = godotenv.Load() // a missing .env is fine

	v := viper.New()
	SetDefaults(v)
	v.AutomaticEnv()
	return FromViper(v)
}

// FromViper builds a Config from an already populated viper instance.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		AppPort:      v.GetString("APP_PORT"),
		DBDriver:     strings.ToLower(v.GetString("DB_DRIVER")),
		DatabaseDSN:  v.GetString("DATABASE_DSN"),
		JWTSecret:    v.GetString("JWT_SECRET"),
		RabbitMQURL:  v.GetString("RABBITMQ_URL"),
		QueryTimeout: v.GetDuration("QUERY_TIMEOUT"),
		SessionTTL:   v.GetDuration("SESSION_TTL"),
		SeedCatalog:  v.GetBool("SEED_CATALOG"),
		LogLevel:     v.GetString("LOG_LEVEL"),
	}

	switch cfg.DBDriver {
	case "sqlite", "postgres", "mysql":
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET must not be empty")
	}
	if cfg.QueryTimeout < 0 || cfg.SessionTTL < 0 {
		return nil, fmt.Errorf("QUERY_TIMEOUT and SESSION_TTL must not be negative")
	}
	return cfg, nil
}
