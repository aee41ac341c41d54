package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadClientConfig_defaults(t *testing.T) {
	cfg, err := LoadClientConfig()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8000", cfg.ServerURL)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 0, cfg.MessageLimit)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.False(t, cfg.Telemetry)
}

func TestLoadClientConfig_env(t *testing.T) {
	t.Setenv("TEXTQUEST_SERVER_URL", "http://game.test:9000")
	t.Setenv("TEXTQUEST_MESSAGE_LIMIT", "200")
	t.Setenv("TEXTQUEST_REQUEST_TIMEOUT", "5s")
	t.Setenv("TEXTQUEST_TELEMETRY", "true")

	cfg, err := LoadClientConfig()
	require.NoError(t, err)

	assert.Equal(t, "http://game.test:9000", cfg.ServerURL)
	assert.Equal(t, 200, cfg.MessageLimit)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.True(t, cfg.Telemetry)
}

func TestLoadServerConfig_invalid(t *testing.T) {
	t.Setenv("TEXTQUEST_PORT", "not-a-port")

	_, err := LoadServerConfig()
	assert.ErrorContains(t, err, "parse env")
}

func TestLoadDotEnv(t *testing.T) {
	assert.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), "missing.env")))

	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("TEXTQUEST_ALLOW_ORIGIN=http://a.test\n"), 0o600))
	t.Setenv("TEXTQUEST_ALLOW_ORIGIN", "")
	os.Unsetenv("TEXTQUEST_ALLOW_ORIGIN")

	require.NoError(t, LoadDotEnv(path))
	cfg, err := LoadServerConfig()
	require.NoError(t, err)
	assert.Equal(t, "http://a.test", cfg.AllowOrigin)
}
