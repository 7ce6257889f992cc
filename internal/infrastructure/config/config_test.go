package config

import (
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
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)

	// Desktop config
	assert.Equal(t, 256, cfg.Desktop.MaxSessions)
	assert.Equal(t, 200*time.Millisecond, cfg.Desktop.AnimationDelay)
	assert.Equal(t, 768, cfg.Desktop.MobileBreakpoint)

	// Storage config
	assert.Equal(t, "memory", cfg.Storage.Driver)

	// Content editing is off without a hash
	assert.Empty(t, cfg.Content.AdminPasswordHash)
	assert.False(t, cfg.Browser.PreviewEnabled)

	// Rate limit config
	assert.Equal(t, 100, cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, 200, cfg.RateLimit.Burst)
	assert.True(t, cfg.RateLimit.Enabled)

	require.NoError(t, cfg.Validate())
}

func TestLoadMatchesDefault(t *testing.T) {
	// Should match the defaults when no env vars are set
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadWithEnvironmentVariables(t *testing.T) {
	envVars := map[string]string{
		"PORT":               "9000",
		"HOST":               "127.0.0.1",
		"ALLOWED_ORIGINS":    "https://a.example,https://b.example",
		"MAX_SESSIONS":       "8",
		"FRAME_RATE":         "30",
		"ANIMATION_DELAY":    "350ms",
		"STORAGE_DRIVER":     "sqlite",
		"STORAGE_PATH":       "/tmp/desk.db",
		"APPS_MANIFEST":      "/etc/webdesk/apps.toml",
		"BROWSER_PREVIEW":    "true",
		"LOG_LEVEL":          "debug",
		"LOG_DEV":            "true",
		"RATE_LIMIT_ENABLED": "false",
	}
	for key, value := range envVars {
		t.Setenv(key, value)
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, 8, cfg.Desktop.MaxSessions)
	assert.Equal(t, 30, cfg.Desktop.FrameRate)
	assert.Equal(t, 350*time.Millisecond, cfg.Desktop.AnimationDelay)
	assert.Equal(t, "sqlite", cfg.Storage.Driver)
	assert.Equal(t, "/tmp/desk.db", cfg.Storage.Path)
	assert.Equal(t, "/etc/webdesk/apps.toml", cfg.Registry.Manifest)
	assert.True(t, cfg.Browser.PreviewEnabled)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Logging.Development)
	assert.False(t, cfg.RateLimit.Enabled)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"unknown driver", "STORAGE_DRIVER", "redis"},
		{"zero sessions", "MAX_SESSIONS", "0"},
		{"frame rate", "FRAME_RATE", "1000"},
		{"malformed duration", "ANIMATION_DELAY", "soon"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)
			_, err := Load()
			assert.Error(t, err)

			cfg := LoadOrDefault()
			assert.Equal(t, Default(), cfg)
		})
	}
}
