package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/GriffinCanCode/webdesk/internal/api/middleware"
	"github.com/GriffinCanCode/webdesk/internal/apps"
	"github.com/GriffinCanCode/webdesk/internal/domain/chrome/chrometest"
	"github.com/GriffinCanCode/webdesk/internal/domain/desktop"
	"github.com/GriffinCanCode/webdesk/internal/domain/registry"
	"github.com/GriffinCanCode/webdesk/internal/domain/session"
	"github.com/GriffinCanCode/webdesk/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/webdesk/internal/infrastructure/storage"
)

const adminPassword = "hunter2"

type testEnv struct {
	router   *gin.Engine
	sessions *session.Manager
	content  *storage.Content
}

func setup(t *testing.T, editable bool) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	reg := registry.NewManager()
	require.NoError(t, registry.NewSeeder(reg, zap.NewNop()).Seed(""))

	content := storage.NewContent(storage.NewMemory(), nil)
	t.Cleanup(func() { _ = content.Close() })

	catalog, err := apps.NewCatalog(apps.Deps{Content: content})
	require.NoError(t, err)

	cfg := desktop.DefaultConfig()
	cfg.FrameRate = 1
	sessions := session.NewManager(session.Config{MaxSessions: 2, Desktop: cfg}, desktop.Deps{
		Registry:  reg,
		Apps:      catalog,
		Scheduler: chrometest.NewScheduler(),
		Notifier:  content,
	}, zap.NewNop())
	t.Cleanup(sessions.CloseAll)

	var hash string
	if editable {
		h, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.MinCost)
		require.NoError(t, err)
		hash = string(h)
	}

	router := gin.New()
	NewHandlers(reg, sessions, content, Options{
		Metrics:           monitoring.NewMetrics(),
		AdminPasswordHash: hash,
	}).Register(router)

	return &testEnv{router: router, sessions: sessions, content: content}
}

func (e *testEnv) do(method, path string, body interface{}, header map[string]string) (*httptest.ResponseRecorder, map[string]interface{}) {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	var out map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	return w, out
}

func (e *testEnv) newSession(t *testing.T) string {
	t.Helper()
	desk, err := e.sessions.Create(context.Background())
	require.NoError(t, err)
	return desk.ID()
}

func TestRootAndHealth(t *testing.T) {
	env := setup(t, false)

	w, body := env.do(http.MethodGet, "/", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "online", body["status"])

	w, body = env.do(http.MethodGet, "/health", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "healthy", body["status"])

	w, _ = env.do(http.MethodGet, "/metrics", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w, _ = env.do(http.MethodGet, "/metrics/json", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestListApps(t *testing.T) {
	env := setup(t, false)

	w, body := env.do(http.MethodGet, "/apps", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	list, ok := body["apps"].([]interface{})
	require.True(t, ok)
	assert.Len(t, list, 7)
}

func TestSessionLifecycle(t *testing.T) {
	env := setup(t, false)
	sid := env.newSession(t)

	w, body := env.do(http.MethodGet, "/sessions", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, body["sessions"], 1)

	w, body = env.do(http.MethodGet, "/sessions/"+sid, nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, sid, body["session_id"])

	w, _ = env.do(http.MethodDelete, "/sessions/"+sid, nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w, _ = env.do(http.MethodDelete, "/sessions/"+sid, nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = env.do(http.MethodGet, "/sessions/"+sid+"/windows", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = env.do(http.MethodGet, "/sessions/bad%20id", nil, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLaunchAndWindowOps(t *testing.T) {
	env := setup(t, false)
	sid := env.newSession(t)
	base := "/sessions/" + sid

	w, body := env.do(http.MethodPost, base+"/launch/terminal", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["applied"])

	w, _ = env.do(http.MethodPost, base+"/launch/spreadsheet", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, body = env.do(http.MethodPut, base+"/windows/terminal/position", map[string]int{"x": 10, "y": 20}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["applied"])

	w, _ = env.do(http.MethodPut, base+"/windows/terminal/size", map[string]int{"width": 0, "height": 10}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w, _ = env.do(http.MethodPut, base+"/windows/terminal/size", "nonsense", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w, _ = env.do(http.MethodPut, base+"/windows/terminal/size", map[string]int{"width": 640, "height": 480}, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	desk, err := env.sessions.Get(sid)
	require.NoError(t, err)
	win, ok := desk.Store().Get("terminal")
	require.True(t, ok)
	assert.Equal(t, 10, win.Position.X)
	assert.Equal(t, 640, win.Size.Width)

	w, body = env.do(http.MethodPost, base+"/windows/terminal/minimize", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["applied"])
	win, _ = desk.Store().Get("terminal")
	assert.True(t, win.Minimized)

	// Unknown windows are a silent no-op
	w, body = env.do(http.MethodPost, base+"/windows/ghost/focus", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, body["applied"])

	w, _ = env.do(http.MethodPost, base+"/windows/terminal/explode", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, body = env.do(http.MethodGet, base+"/windows", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, body["windows"], 1)
}

func TestContentReadAndEdit(t *testing.T) {
	env := setup(t, true)
	auth := map[string]string{middleware.HeaderAdminPassword: adminPassword}

	w, _ := env.do(http.MethodGet, "/content/portfolio_content", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = env.do(http.MethodPut, "/content/portfolio_content", ContentRequest{Value: `{"name":"Ada"}`}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w, _ = env.do(http.MethodPut, "/content/portfolio_content", ContentRequest{Value: `{"name":"Ada"}`},
		map[string]string{middleware.HeaderAdminPassword: "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = env.do(http.MethodPut, "/content/portfolio_content", ContentRequest{Value: `{broken`}, auth)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w, _ = env.do(http.MethodPut, "/content/screen_brightness", ContentRequest{Value: "140"}, auth)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w, _ = env.do(http.MethodPut, "/content/secrets", ContentRequest{Value: "x"}, auth)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = env.do(http.MethodPut, "/content/portfolio_content", ContentRequest{Value: `{"name":"Ada"}`}, auth)
	require.Equal(t, http.StatusOK, w.Code)

	w, body := env.do(http.MethodGet, "/content/portfolio_content", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `{"name":"Ada"}`, body["value"])
}

func TestContentEditDisabledWithoutHash(t *testing.T) {
	env := setup(t, false)

	w, _ := env.do(http.MethodPut, "/content/portfolio_content", ContentRequest{Value: "{}"},
		map[string]string{middleware.HeaderAdminPassword: adminPassword})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestContentEditReachesAbout(t *testing.T) {
	env := setup(t, true)
	sid := env.newSession(t)
	desk, err := env.sessions.Get(sid)
	require.NoError(t, err)

	w, _ := env.do(http.MethodPost, "/sessions/"+sid+"/launch/about", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = env.do(http.MethodPut, "/content/portfolio_content", ContentRequest{Value: `{"name":"Grace Hopper"}`},
		map[string]string{middleware.HeaderAdminPassword: adminPassword})
	require.Equal(t, http.StatusOK, w.Code)

	// The broadcast is applied on the loop; ask for scenes until it lands
	require.Eventually(t, func() bool {
		scene, err := desk.Scene(context.Background())
		if err != nil {
			return false
		}
		win, ok := scene.Window("about")
		if !ok {
			return false
		}
		raw, _ := json.Marshal(win.Body)
		return bytes.Contains(raw, []byte("Grace Hopper"))
	}, 2*time.Second, 10*time.Millisecond)
}

func TestSessionLimit(t *testing.T) {
	env := setup(t, false)
	env.newSession(t)
	env.newSession(t)

	_, err := env.sessions.Create(context.Background())
	assert.ErrorIs(t, err, session.ErrTooManySessions)
}
