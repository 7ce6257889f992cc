package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/webdesk/internal/infrastructure/config"
)

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Logging.Level = "error"
	cfg.Desktop.FrameRate = 10
	cfg.Desktop.AnimationDelay = 50 * time.Millisecond
	cfg.Desktop.Title = "Test Desk"
	return cfg
}

func TestNewServerRoutes(t *testing.T) {
	srv, err := NewServer(testConfig())
	require.NoError(t, err)
	t.Cleanup(func() { _ = srv.Close() })

	for _, path := range []string{"/", "/health", "/apps", "/sessions", "/metrics"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		srv.Router().ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code, path)
		assert.NotEmpty(t, w.Header().Get("X-Request-ID"), path)
	}
}

func TestDesktopConfigMapping(t *testing.T) {
	cfg := testConfig()
	cfg.Desktop.MobileBreakpoint = 600
	cfg.Desktop.DockReservation = 64

	got := desktopConfig(cfg.Desktop)
	assert.Equal(t, "Test Desk", got.Title)
	assert.Equal(t, 10, got.FrameRate)
	assert.Equal(t, 64, got.DockReservation)
	assert.Equal(t, 50*time.Millisecond, got.Chrome.Delay)
	assert.Equal(t, 600, got.Chrome.Breakpoint)
}

func TestSessionUsesConfiguredTitle(t *testing.T) {
	srv, err := NewServer(testConfig())
	require.NoError(t, err)
	t.Cleanup(func() { _ = srv.Close() })

	desk, err := srv.Sessions().Create(t.Context())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/sessions/"+desk.ID(), nil)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var scene struct {
		TopBar struct {
			Title string `json:"title"`
		} `json:"top_bar"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &scene))
	assert.Equal(t, "Test Desk", scene.TopBar.Title)
}

func TestNewServerRejectsInvalidConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Storage.Driver = "redis"
	_, err := NewServer(cfg)
	assert.Error(t, err)
}
