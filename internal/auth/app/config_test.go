package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg := LoadConfig()

	require.Equal(t, 30*time.Second, cfg.AccessTTL)
	require.Equal(t, 7*24*time.Hour, cfg.RefreshTTL)
	require.Equal(t, "authcore.db", cfg.DatabaseFile)
	require.Equal(t, 8080, cfg.Port)
	require.Equal(t, time.Hour, cfg.HousekeepingInterval)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("AUTH_ACCESS_TTL", "45s")
	t.Setenv("AUTH_REFRESH_TTL", "3600")
	t.Setenv("PORT", "9191")

	cfg := LoadConfig()
	require.Equal(t, 45*time.Second, cfg.AccessTTL)
	require.Equal(t, time.Hour, cfg.RefreshTTL)
	require.Equal(t, 9191, cfg.Port)
}

func TestConfigValidate(t *testing.T) {
	cfg := LoadConfig()

	cfg.AccessSigningKey = ""
	cfg.RefreshSigningKey = ""
	require.ErrorIs(t, cfg.Validate(), ErrMissingSigningKeys)

	cfg.AccessSigningKey = "same"
	cfg.RefreshSigningKey = "same"
	require.Error(t, cfg.Validate())

	cfg.RefreshSigningKey = "different"
	require.NoError(t, cfg.Validate())
}
