package ws

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/webdesk/internal/domain/chrome"
	"github.com/GriffinCanCode/webdesk/internal/domain/desktop"
	"github.com/GriffinCanCode/webdesk/internal/domain/drag"
	"github.com/GriffinCanCode/webdesk/internal/domain/session"
	"github.com/GriffinCanCode/webdesk/internal/shared/types"
)

var errUnknownType = errors.New("unknown message type")

// Metrics receives connection and message counts
type Metrics interface {
	IncWSConnections()
	DecWSConnections()
	RecordWSMessage(direction, msgType string)
}

// Options tunes the connection handling
type Options struct {
	AllowedOrigins []string
	ReadLimit      int64
	WriteTimeout   time.Duration
	Metrics        Metrics
	Logger         *zap.Logger
}

// DefaultOptions allows any origin
func DefaultOptions() Options {
	return Options{
		AllowedOrigins: []string{"*"},
		ReadLimit:      64 * 1024,
		WriteTimeout:   10 * time.Second,
	}
}

// Handler manages desktop WebSocket connections. Every connection owns
// exactly one session, closed when the socket goes away.
type Handler struct {
	sessions *session.Manager
	upgrader websocket.Upgrader
	opts     Options
	logger   *zap.Logger
}

// NewHandler creates a new WebSocket handler
func NewHandler(sessions *session.Manager, opts Options) *Handler {
	if opts.ReadLimit <= 0 {
		opts.ReadLimit = DefaultOptions().ReadLimit
	}
	if opts.WriteTimeout <= 0 {
		opts.WriteTimeout = DefaultOptions().WriteTimeout
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	h := &Handler{
		sessions: sessions,
		opts:     opts,
		logger:   logger.Named("ws"),
	}
	h.upgrader = websocket.Upgrader{CheckOrigin: h.checkOrigin}
	return h
}

func (h *Handler) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	for _, allowed := range h.opts.AllowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	return false
}

// conn serializes writes; gorilla allows one concurrent writer
type conn struct {
	ws      *websocket.Conn
	id      string
	mu      sync.Mutex
	timeout time.Duration
	metrics Metrics
}

func (c *conn) send(msg ServerMessage) error {
	if msg.Timestamp == 0 {
		msg.Timestamp = time.Now().Unix()
	}
	data, err := sonic.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encode %s message: %w", msg.Type, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.ws.SetWriteDeadline(time.Now().Add(c.timeout))
	if err := c.ws.WriteMessage(websocket.TextMessage, data); err != nil {
		return err
	}
	if c.metrics != nil {
		c.metrics.RecordWSMessage("out", msg.Type)
	}
	return nil
}

func (c *conn) sendError(message string) error {
	return c.send(ServerMessage{Type: TypeError, Message: message})
}

// HandleConnection upgrades the request and runs the session until the socket closes
func (h *Handler) HandleConnection(c *gin.Context) {
	ws, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("WebSocket upgrade failed", zap.Error(err))
		return
	}
	defer ws.Close()
	ws.SetReadLimit(h.opts.ReadLimit)

	cn := &conn{ws: ws, id: uuid.NewString(), timeout: h.opts.WriteTimeout, metrics: h.opts.Metrics}
	logger := h.logger.With(zap.String("connection_id", cn.id))

	if h.opts.Metrics != nil {
		h.opts.Metrics.IncWSConnections()
		defer h.opts.Metrics.DecWSConnections()
	}

	desk, err := h.sessions.Create(c.Request.Context())
	if err != nil {
		logger.Warn("Session creation failed", zap.Error(err))
		_ = cn.sendError(err.Error())
		return
	}
	defer h.sessions.Close(desk.ID())
	logger = logger.With(zap.String("session_id", desk.ID()))
	logger.Info("Desktop connected")

	if err := cn.send(ServerMessage{Type: TypeSession, SessionID: desk.ID(), ConnectionID: cn.id}); err != nil {
		logger.Debug("Session message failed", zap.Error(err))
		return
	}

	scenes, unsubscribe := desk.Subscribe()
	defer unsubscribe()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		h.forward(cn, scenes, logger)
	}()

	h.read(c.Request.Context(), cn, desk, logger)

	// Unblock the forwarder before waiting on it
	unsubscribe()
	wg.Wait()
	logger.Info("Desktop disconnected")
}

// forward pushes scenes until the subscription closes. The channel holds at
// most one scene, so a slow socket only ever sees the latest.
func (h *Handler) forward(cn *conn, scenes <-chan desktop.Scene, logger *zap.Logger) {
	for scene := range scenes {
		scene := scene
		if err := cn.send(ServerMessage{Type: TypeScene, SessionID: scene.SessionID, Scene: &scene}); err != nil {
			logger.Debug("Scene write failed", zap.Error(err))
			return
		}
	}
}

func (h *Handler) read(ctx context.Context, cn *conn, desk *desktop.Desktop, logger *zap.Logger) {
	for {
		_, data, err := cn.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn("WebSocket read error", zap.Error(err))
			}
			return
		}

		var msg ClientMessage
		if err := sonic.Unmarshal(data, &msg); err != nil {
			_ = cn.sendError("malformed message")
			continue
		}
		if h.opts.Metrics != nil {
			h.opts.Metrics.RecordWSMessage("in", msg.Type)
		}

		if msg.Type == TypePing {
			_ = cn.send(ServerMessage{Type: TypePong})
			continue
		}

		ev, err := toEvent(msg)
		if err != nil {
			_ = cn.sendError(err.Error())
			continue
		}
		// Runs on the desktop loop, so the write happens elsewhere
		report := func(err error) { go cn.sendError(err.Error()) }
		if !desk.Send(ev, report) {
			_ = cn.sendError("session closed")
			return
		}
		select {
		case <-ctx.Done():
			return
		default:
		}
	}
}

// toEvent translates a client message into a desktop event
func toEvent(msg ClientMessage) (desktop.Event, error) {
	switch msg.Type {
	case TypeViewport:
		return desktop.Viewport{Width: msg.Width, Height: msg.Height}, nil
	case TypeLaunch:
		if msg.AppID == "" {
			return nil, errors.New("launch requires app_id")
		}
		return desktop.Launch{AppID: msg.AppID}, nil
	case TypePointerDown:
		region := drag.Region(msg.Region)
		switch region {
		case drag.RegionTitleBar, drag.RegionControls, drag.RegionContent:
		default:
			return nil, fmt.Errorf("unknown region: %q", msg.Region)
		}
		return desktop.PointerDown{
			WindowID: msg.WindowID,
			Region:   region,
			Point:    types.Point{X: msg.X, Y: msg.Y},
		}, nil
	case TypePointerMove:
		return desktop.PointerMove{Point: types.Point{X: msg.X, Y: msg.Y}}, nil
	case TypePointerUp:
		return desktop.PointerUp{}, nil
	case TypeControl:
		action, ok := chrome.ParseAction(msg.Action)
		if !ok {
			return nil, fmt.Errorf("unknown control action: %q", msg.Action)
		}
		return desktop.Control{WindowID: msg.WindowID, Action: action}, nil
	case TypeResize:
		if msg.Width <= 0 || msg.Height <= 0 {
			return nil, errors.New("resize requires positive width and height")
		}
		return desktop.Resize{WindowID: msg.WindowID, Size: types.Size{Width: msg.Width, Height: msg.Height}}, nil
	case TypeAppAction:
		if msg.Action == "" {
			return nil, errors.New("app_action requires action")
		}
		return desktop.AppAction{WindowID: msg.WindowID, Name: msg.Action, Args: msg.Args}, nil
	default:
		return nil, fmt.Errorf("%w: %q", errUnknownType, msg.Type)
	}
}
