package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "secret-key", cfg.JWTSecret)
	assert.Equal(t, 20, cfg.RateLimitBurst)
	assert.Equal(t, uint(5), cfg.DBConnectAttempts)
	assert.Equal(t, time.Second, cfg.DBConnectRetryDelay)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("RATE_LIMIT_BURST", "3")
	t.Setenv("NOTIFICATIONS_ENABLED", "false")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 3, cfg.RateLimitBurst)
	assert.False(t, cfg.Notifications)
}

func TestLoad_NonIntegerValue(t *testing.T) {
	t.Setenv("RATE_LIMIT_BURST", "many")

	cfg, err := Load()
	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoad_NonPositiveRateLimit(t *testing.T) {
	t.Setenv("RATE_LIMIT_RPS", "0")

	_, err := Load()
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
