package ws

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/webdesk/internal/apps"
	"github.com/GriffinCanCode/webdesk/internal/domain/chrome"
	"github.com/GriffinCanCode/webdesk/internal/domain/desktop"
	"github.com/GriffinCanCode/webdesk/internal/domain/registry"
	"github.com/GriffinCanCode/webdesk/internal/domain/session"
	"github.com/GriffinCanCode/webdesk/internal/infrastructure/storage"
)

func setup(t *testing.T) (*session.Manager, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	reg := registry.NewManager()
	require.NoError(t, registry.NewSeeder(reg, zap.NewNop()).Seed(""))
	content := storage.NewContent(storage.NewMemory(), nil)
	t.Cleanup(func() { _ = content.Close() })
	catalog, err := apps.NewCatalog(apps.Deps{Content: content})
	require.NoError(t, err)

	sessions := session.NewManager(session.Config{MaxSessions: 4, Desktop: desktop.DefaultConfig()},
		desktop.Deps{Registry: reg, Apps: catalog, Notifier: content}, zap.NewNop())
	t.Cleanup(sessions.CloseAll)

	router := gin.New()
	router.GET("/desktop", NewHandler(sessions, DefaultOptions()).HandleConnection)
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return sessions, "ws" + strings.TrimPrefix(srv.URL, "http") + "/desktop"
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

// next reads until a message of the wanted type arrives
func next(t *testing.T, conn *websocket.Conn, want string, match func(ServerMessage) bool) ServerMessage {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(3*time.Second)))
	for {
		var msg ServerMessage
		require.NoError(t, conn.ReadJSON(&msg))
		if msg.Type == want && (match == nil || match(msg)) {
			return msg
		}
	}
}

func TestConnectCreatesSession(t *testing.T) {
	sessions, url := setup(t)
	conn := dial(t, url)

	msg := next(t, conn, TypeSession, nil)
	assert.NotEmpty(t, msg.SessionID)
	assert.NotEmpty(t, msg.ConnectionID)

	_, err := sessions.Get(msg.SessionID)
	assert.NoError(t, err)
}

func TestLaunchStreamsScene(t *testing.T) {
	_, url := setup(t)
	conn := dial(t, url)
	sess := next(t, conn, TypeSession, nil)

	require.NoError(t, conn.WriteJSON(ClientMessage{Type: TypeViewport, Width: 1280, Height: 800}))
	require.NoError(t, conn.WriteJSON(ClientMessage{Type: TypeLaunch, AppID: "terminal"}))

	msg := next(t, conn, TypeScene, func(m ServerMessage) bool {
		if m.Scene == nil {
			return false
		}
		_, ok := m.Scene.Window("terminal")
		return ok
	})
	assert.Equal(t, sess.SessionID, msg.Scene.SessionID)
	assert.Equal(t, 1280, msg.Scene.Viewport.Width)
	assert.Equal(t, "terminal", msg.Scene.FocusedID)
}

func TestControlMinimizes(t *testing.T) {
	_, url := setup(t)
	conn := dial(t, url)
	next(t, conn, TypeSession, nil)

	require.NoError(t, conn.WriteJSON(ClientMessage{Type: TypeViewport, Width: 1280, Height: 800}))
	require.NoError(t, conn.WriteJSON(ClientMessage{Type: TypeLaunch, AppID: "music"}))
	require.NoError(t, conn.WriteJSON(ClientMessage{Type: TypeControl, WindowID: "music", Action: string(chrome.ActionMinimize)}))

	// Minimized windows leave the scene once the transition settles
	next(t, conn, TypeScene, func(m ServerMessage) bool {
		if m.Scene == nil || len(m.Scene.Dock.Running) == 0 {
			return false
		}
		_, visible := m.Scene.Window("music")
		return !visible
	})
}

func TestPingAndErrors(t *testing.T) {
	_, url := setup(t)
	conn := dial(t, url)
	next(t, conn, TypeSession, nil)

	require.NoError(t, conn.WriteJSON(ClientMessage{Type: TypePing}))
	next(t, conn, TypePong, nil)

	require.NoError(t, conn.WriteJSON(ClientMessage{Type: "teleport"}))
	msg := next(t, conn, TypeError, nil)
	assert.Contains(t, msg.Message, "unknown message type")

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("{not json")))
	msg = next(t, conn, TypeError, nil)
	assert.Equal(t, "malformed message", msg.Message)

	// The connection survives rejected messages
	require.NoError(t, conn.WriteJSON(ClientMessage{Type: TypePing}))
	next(t, conn, TypePong, nil)
}

func TestDisconnectClosesSession(t *testing.T) {
	sessions, url := setup(t)
	conn := dial(t, url)
	msg := next(t, conn, TypeSession, nil)
	require.Equal(t, 1, sessions.Len())

	require.NoError(t, conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")))
	_ = conn.Close()

	assert.Eventually(t, func() bool {
		_, err := sessions.Get(msg.SessionID)
		return err != nil
	}, 3*time.Second, 10*time.Millisecond)
}

func TestToEvent(t *testing.T) {
	tests := []struct {
		name    string
		msg     ClientMessage
		want    desktop.Event
		wantErr bool
	}{
		{"viewport", ClientMessage{Type: TypeViewport, Width: 800, Height: 600}, desktop.Viewport{Width: 800, Height: 600}, false},
		{"launch", ClientMessage{Type: TypeLaunch, AppID: "files"}, desktop.Launch{AppID: "files"}, false},
		{"launch without app", ClientMessage{Type: TypeLaunch}, nil, true},
		{"pointer up", ClientMessage{Type: TypePointerUp}, desktop.PointerUp{}, false},
		{"bad region", ClientMessage{Type: TypePointerDown, Region: "border"}, nil, true},
		{"bad control", ClientMessage{Type: TypeControl, Action: "explode"}, nil, true},
		{"zero resize", ClientMessage{Type: TypeResize, Width: 0, Height: 10}, nil, true},
		{"app action", ClientMessage{Type: TypeAppAction, WindowID: "music", Action: "play"},
			desktop.AppAction{WindowID: "music", Name: "play"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := toEvent(tt.msg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFailedAppActionAnswersError(t *testing.T) {
	_, url := setup(t)
	conn := dial(t, url)
	next(t, conn, TypeSession, nil)

	require.NoError(t, conn.WriteJSON(ClientMessage{Type: TypeLaunch, AppID: "music"}))
	require.NoError(t, conn.WriteJSON(ClientMessage{Type: TypeAppAction, WindowID: "music", Action: "shuffle"}))

	msg := next(t, conn, TypeError, nil)
	assert.Contains(t, msg.Message, `unknown action "shuffle"`)
}
