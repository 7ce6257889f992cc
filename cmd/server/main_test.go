package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/webdesk/internal/infrastructure/config"
)

func TestApplyFlagsOverridesOnlyChanged(t *testing.T) {
	cmd := newRootCommand()
	require.NoError(t, cmd.ParseFlags([]string{"--port", "9090", "--storage", "sqlite", "--dev"}))

	cfg := config.Default()
	cfg.Server.Host = "127.0.0.1"
	applyFlags(cmd, cfg)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Storage.Driver)
	assert.True(t, cfg.Logging.Development)
	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.False(t, cfg.Browser.PreviewEnabled)
}
