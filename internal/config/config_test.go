package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("JWT_TTL_HOURS", "")
	t.Setenv("PORT", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, DriverPostgres, cfg.StoreDriver)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.NotEmpty(t, cfg.JWTSecret)
	assert.Equal(t, "admin123", cfg.AdminPassword)
}

func TestLoadRejectsShortSecretInProduction(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "short")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestLoadRejectsBadInteger(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("JWT_TTL_HOURS", "a day")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_TTL_HOURS")
}

func TestValidateCollectsErrors(t *testing.T) {
	cfg := &Config{
		Env:            "production",
		StoreDriver:    "redis",
		JWTSecret:      "",
		JWTTTL:         time.Hour,
		RequestTimeout: time.Second,
		LogFormat:      "xml",
	}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "STORE_DRIVER")
	assert.Contains(t, err.Error(), "LOG_FORMAT")
	assert.Contains(t, err.Error(), "JWT_SECRET is required")
}

func TestPostgresDSN(t *testing.T) {
	cfg := &Config{DBHost: "db", DBUser: "u", DBPassword: "p", DBName: "inv", DBPort: "5433"}
	assert.Contains(t, cfg.PostgresDSN(), "host=db user=u password=p dbname=inv port=5433")

	cfg.DatabaseURL = "postgres://u:p@db/inv"
	assert.Equal(t, "postgres://u:p@db/inv", cfg.PostgresDSN())
}
