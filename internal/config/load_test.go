package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-jwt-secret-at-least-32-characters-long"

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("CLARITY_DATABASE_URL", "postgres://localhost:5432/clarity_test")
	t.Setenv("CLARITY_AUTH_JWT_SECRET", testSecret)
}

func TestLoadFromEnvironment(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("CLARITY_SERVER_PORT", "9090")
	t.Setenv("CLARITY_SERVER_LOG_LEVEL", "debug")
	t.Setenv("CLARITY_ENGINE_MIN_SESSION_SECONDS", "900")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, testSecret, cfg.Auth.JWTSecret)
	assert.Equal(t, 900, cfg.Engine.MinSessionSeconds)
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.Equal(t, 60, cfg.Auth.TokenLifetimeMinutes)
	assert.Equal(t, 6, cfg.Task.StaleSessionHours)
	assert.Zero(t, cfg.Engine.MinSessionSeconds, "engine overrides default to unset")
}

func TestLoadMissingDatabaseURL(t *testing.T) {
	t.Setenv("CLARITY_AUTH_JWT_SECRET", testSecret)

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadShortJWTSecret(t *testing.T) {
	t.Setenv("CLARITY_DATABASE_URL", "postgres://localhost:5432/clarity_test")
	t.Setenv("CLARITY_AUTH_JWT_SECRET", "too-short")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadInvalidLogLevel(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("CLARITY_SERVER_LOG_LEVEL", "verbose")

	_, err := Load()
	assert.Error(t, err)
}
