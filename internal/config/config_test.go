package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0:8080", cfg.Addr())
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 90*time.Second, cfg.Extraction.Timeout)
	assert.Equal(t, 50, cfg.Extraction.MinTextLength)
	assert.Equal(t, 2, cfg.Extraction.MinCriticalFields)
	assert.Equal(t, 0.85, cfg.Fingerprint.Threshold)
	assert.Equal(t, "FleetDocs", cfg.Storage.RootFolder)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("EXTRACTION_MIN_TEXT_LEN", "100")
	t.Setenv("FINGERPRINT_THRESHOLD", "0.9")
	t.Setenv("EXTRACTION_PROVIDER", "anthropic")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 100, cfg.Extraction.MinTextLength)
	assert.Equal(t, 0.9, cfg.Fingerprint.Threshold)
	assert.Equal(t, "anthropic", cfg.Extraction.Provider)
}

func TestLoadRejectsMalformedValues(t *testing.T) {
	t.Setenv("SERVER_PORT", "not-a-port")

	_, err := Load()
	assert.ErrorContains(t, err, "SERVER_PORT")
}

func TestValidate(t *testing.T) {
	cfg := &Config{}
	err := cfg.Validate()
	require.Error(t, err)
	assert.ErrorContains(t, err, "DATABASE_URL")
	assert.ErrorContains(t, err, "JWT_SECRET")
	assert.ErrorContains(t, err, "DRIVE_WEBHOOK_URL")

	cfg.Database.URL = "postgres://localhost/fleetdocs"
	cfg.Auth.JWTSecret = "secret"
	cfg.Storage.WebhookURL = "https://script.google.com/macros/s/x/exec"
	assert.NoError(t, cfg.Validate())
}
