package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Server config
	assert.Equal(t, "8000", cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)

	// Logging config
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.Logging.Development)

	// Rate limit config
	assert.Equal(t, 100, cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, 200, cfg.RateLimit.Burst)
	assert.True(t, cfg.RateLimit.Enabled)
	assert.Equal(t, 5*time.Minute, cfg.RateLimit.IdleTTL)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSOrigins)

	// Explorer config
	assert.Equal(t, "/C:", cfg.Explorer.StartPath)
	assert.Equal(t, "/C:/Recycled", cfg.Explorer.RecyclePath)
	assert.Equal(t, 10, cfg.Explorer.MRUSize)
	assert.True(t, cfg.Explorer.AutoConfirm)
	assert.Equal(t, []string{".metadata.json"}, cfg.Explorer.Hidden)

	// Drive config
	assert.Empty(t, cfg.Drives.CRoot)
	assert.Equal(t, []string{"A", "B", "C", "E"}, cfg.Drives.Reserved)
}

func TestLoadWithEnvironmentVariables(t *testing.T) {
	envVars := map[string]string{
		"PORT":                  "9000",
		"HOST":                  "127.0.0.1",
		"LOG_LEVEL":             "debug",
		"LOG_DEV":               "true",
		"RATE_LIMIT_RPS":        "500",
		"RATE_LIMIT_BURST":      "1000",
		"RATE_LIMIT_ENABLED":    "false",
		"RATE_LIMIT_IDLE_TTL":   "30s",
		"CORS_ORIGINS":          "http://localhost:3000",
		"EXPLORER_START_PATH":   "/",
		"EXPLORER_MRU_SIZE":     "5",
		"EXPLORER_AUTO_CONFIRM": "false",
		"EXPLORER_HIDDEN":       ".metadata.json,*.tmp",
		"C_DRIVE_ROOT":          "/var/lib/zen/c",
	}

	for key, value := range envVars {
		t.Setenv(key, value)
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Logging.Development)
	assert.Equal(t, 500, cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, 1000, cfg.RateLimit.Burst)
	assert.False(t, cfg.RateLimit.Enabled)
	assert.Equal(t, 30*time.Second, cfg.RateLimit.IdleTTL)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.Server.CORSOrigins)
	assert.Equal(t, "/", cfg.Explorer.StartPath)
	assert.Equal(t, 5, cfg.Explorer.MRUSize)
	assert.False(t, cfg.Explorer.AutoConfirm)
	assert.Equal(t, []string{".metadata.json", "*.tmp"}, cfg.Explorer.Hidden)
	assert.Equal(t, "/var/lib/zen/c", cfg.Drives.CRoot)
}

func TestLoadInvalidValue(t *testing.T) {
	t.Setenv("EXPLORER_MRU_SIZE", "ten")

	_, err := Load()
	assert.Error(t, err)

	cfg := LoadOrDefault()
	assert.Equal(t, 10, cfg.Explorer.MRUSize)
}

func TestServerConfig(t *testing.T) {
	tests := []struct {
		name     string
		port     string
		host     string
		wantPort string
		wantHost string
	}{
		{name: "default values", wantPort: "8000", wantHost: "0.0.0.0"},
		{name: "custom port", port: "9000", wantPort: "9000", wantHost: "0.0.0.0"},
		{name: "custom host", host: "localhost", wantPort: "8000", wantHost: "localhost"},
		{name: "custom port and host", port: "3000", host: "127.0.0.1", wantPort: "3000", wantHost: "127.0.0.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Unsetenv("PORT")
			os.Unsetenv("HOST")

			if tt.port != "" {
				t.Setenv("PORT", tt.port)
			}
			if tt.host != "" {
				t.Setenv("HOST", tt.host)
			}

			cfg := LoadOrDefault()

			assert.Equal(t, tt.wantPort, cfg.Server.Port)
			assert.Equal(t, tt.wantHost, cfg.Server.Host)
		})
	}
}
