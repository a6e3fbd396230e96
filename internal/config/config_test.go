package config

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRejectsMissingJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestLoadRejectsShortJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", strings.Repeat("x", MinJWTSecretLength-1))

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least")
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", strings.Repeat("x", MinJWTSecretLength))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "admin-console", cfg.JWT.Issuer)
	assert.Equal(t, "admin-console-clients", cfg.JWT.Audience)
	assert.Equal(t, time.Hour, cfg.JWT.TTL())
	assert.Equal(t, 5, cfg.Login.MaxFailedAttempts)
	assert.Equal(t, 15*time.Minute, cfg.Login.LockoutDuration())
	assert.False(t, cfg.Demo.Enabled)
}

func TestLoadRejectsNonPositiveTTL(t *testing.T) {
	t.Setenv("JWT_SECRET", strings.Repeat("x", MinJWTSecretLength))
	t.Setenv("JWT_TTL_MINUTES", "0")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_TTL_MINUTES")
}
