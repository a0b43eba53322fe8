package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, "http://localhost:8080/api", cfg.API.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.API.Timeout)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, 8080, cfg.DevServer.Port)
	assert.Equal(t, 24*time.Hour, cfg.DevServer.TokenExpiry)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("TALEEMTRACK_API_URL", "https://school.example.com/api/")
	t.Setenv("TALEEMTRACK_API_TIMEOUT", "3s")
	t.Setenv("DEV_SERVER_ALLOWED_ORIGINS", "http://localhost:4200, https://app.example.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://school.example.com/api", cfg.API.BaseURL, "trailing slash is trimmed")
	assert.Equal(t, 3*time.Second, cfg.API.Timeout)
	assert.Equal(t, []string{"http://localhost:4200", "https://app.example.com"}, cfg.DevServer.CORSOrigins)
}

func TestBadDurationFallsBack(t *testing.T) {
	t.Setenv("TALEEMTRACK_API_TIMEOUT", "soon")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 15*time.Second, cfg.API.Timeout)
}

func TestDefaultCredentialsFile(t *testing.T) {
	cfg := &Config{}
	assert.Equal(t,
		filepath.Join("/home/user/.config", "taleemtrack", "credentials.json"),
		cfg.DefaultCredentialsFile("/home/user/.config"))

	cfg.Auth.CredentialsFile = "/tmp/creds.json"
	assert.Equal(t, "/tmp/creds.json", cfg.DefaultCredentialsFile("/home/user/.config"))
}
