package ws

import (
	"github.com/GriffinCanCode/webdesk/internal/domain/desktop"
)

// Client message types
const (
	TypeViewport    = "viewport"
	TypeLaunch      = "launch"
	TypePointerDown = "pointer_down"
	TypePointerMove = "pointer_move"
	TypePointerUp   = "pointer_up"
	TypeControl     = "control"
	TypeResize      = "resize"
	TypeAppAction   = "app_action"
	TypePing        = "ping"
)

// Server message types
const (
	TypeSession = "session"
	TypeScene   = "scene"
	TypePong    = "pong"
	TypeError   = "error"
)

// ClientMessage is anything the page sends. Fields are interpreted per Type.
type ClientMessage struct {
	Type     string                 `json:"type"`
	AppID    string                 `json:"app_id,omitempty"`
	WindowID string                 `json:"window_id,omitempty"`
	Region   string                 `json:"region,omitempty"`
	Action   string                 `json:"action,omitempty"`
	X        int                    `json:"x,omitempty"`
	Y        int                    `json:"y,omitempty"`
	Width    int                    `json:"width,omitempty"`
	Height   int                    `json:"height,omitempty"`
	Args     map[string]interface{} `json:"args,omitempty"`
}

// ServerMessage is anything the service sends
type ServerMessage struct {
	Type         string         `json:"type"`
	SessionID    string         `json:"session_id,omitempty"`
	ConnectionID string         `json:"connection_id,omitempty"`
	Scene        *desktop.Scene `json:"scene,omitempty"`
	Message      string         `json:"message,omitempty"`
	Timestamp    int64          `json:"timestamp"`
}
