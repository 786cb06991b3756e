package config_test

import (
	"testing"
	"time"

	"cartx/internal/config"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_Defaults(t *testing.T) {
	v := viper.New()
	config.SetDefaults(v)

	cfg, err := config.FromViper(v)
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.AppPort)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, 5*time.Second, cfg.QueryTimeout)
	assert.Equal(t, 12*time.Hour, cfg.SessionTTL)
	assert.True(t, cfg.SeedCatalog)
	assert.Empty(t, cfg.RabbitMQURL)
}

func TestFromViper_Overrides(t *testing.T) {
	v := viper.New()
	config.SetDefaults(v)
	v.Set("DB_DRIVER", "Postgres")
	v.Set("QUERY_TIMEOUT", "250ms")
	v.Set("SEED_CATALOG", "false")

	cfg, err := config.FromViper(v)
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, 250*time.Millisecond, cfg.QueryTimeout)
	assert.False(t, cfg.SeedCatalog)
}

func TestFromViper_Invalid(t *testing.T) {
	v := viper.New()
	config.SetDefaults(v)
	v.Set("DB_DRIVER", "oracle")
	_, err := config.FromViper(v)
	assert.Error(t, err)

	v = viper.New()
	config.SetDefaults(v)
	v.Set("JWT_SECRET", "")
	_, err = config.FromViper(v)
	assert.Error(t, err)
}

func TestLoad_ReadsEnvironment(t *testing.T) {
	t.Setenv("APP_PORT", ":9090")
	t.Setenv("SESSION_TTL", "30m")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.AppPort)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
}
