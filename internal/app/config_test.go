package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfig(t, "server:\n  http-port: :8080\n")

	cfg, realpath, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, path, realpath)

	// Explicit value wins, everything else falls back to defaults.
	assert.Equal(t, ":8080", cfg.Server.HttpPort)
	assert.Equal(t, "release", cfg.Server.RunMode)
	assert.Equal(t, "sqlite", cfg.Database.Type)
	assert.Equal(t, 20, cfg.App.DefaultPageSize)
	assert.Equal(t, 100, cfg.App.BatchCreateLimit)
	assert.True(t, cfg.User.RegisterIsEnable)
	assert.True(t, cfg.Tracer.Enabled)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestConfigDurationGetters(t *testing.T) {
	path := writeConfig(t, "security:\n  token-expiry: 2h\n  refresh-token-expiry: 7d\n")

	cfg, _, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 2*time.Hour, cfg.GetTokenExpiry())
	assert.Equal(t, 7*24*time.Hour, cfg.GetRefreshTokenExpiry())
	assert.Equal(t, time.Hour, cfg.GetTokenCleanupInterval())
	assert.Equal(t, 24*time.Hour, cfg.GetDBMaintenanceInterval())
}
