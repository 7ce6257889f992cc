package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/webdesk/internal/domain/chrome"
	"github.com/GriffinCanCode/webdesk/internal/domain/desktop"
	"github.com/GriffinCanCode/webdesk/internal/shared/types"
	"github.com/GriffinCanCode/webdesk/internal/shared/utils"
)

// ListSessions lists live desktop sessions
func (h *Handlers) ListSessions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"sessions": h.sessions.List(),
		"stats":    h.sessions.Stats(),
	})
}

// GetSession returns the current scene of a session
func (h *Handlers) GetSession(c *gin.Context) {
	desk, ok := h.desktop(c)
	if !ok {
		return
	}
	scene, err := desk.Scene(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, scene)
}

// DeleteSession closes a session
func (h *Handlers) DeleteSession(c *gin.Context) {
	sid := c.Param("id")
	if err := utils.ValidateID(sid, "session_id", true); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !h.sessions.Close(sid) {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("session not found: %s", sid)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "session_id": sid})
}

// ListWindows returns the windows of a session in stacking order
func (h *Handlers) ListWindows(c *gin.Context) {
	desk, ok := h.desktop(c)
	if !ok {
		return
	}
	store := desk.Store()
	c.JSON(http.StatusOK, gin.H{
		"windows": store.Ordered(),
		"stats":   store.Stats(),
	})
}

// LaunchApp opens or focuses an application
func (h *Handlers) LaunchApp(c *gin.Context) {
	appID := c.Param("app")
	if err := utils.ValidateID(appID, "app_id", true); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if _, ok := h.registry.Get(appID); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("application not found: %s", appID)})
		return
	}
	h.dispatch(c, desktop.Launch{AppID: appID})
}

// WindowOp handles focus, minimize, maximize and close. Unknown windows are
// a silent no-op reported as applied=false.
func (h *Handlers) WindowOp(c *gin.Context) {
	wid, ok := windowID(c)
	if !ok {
		return
	}

	var ev desktop.Event
	switch op := c.Param("op"); op {
	case "focus":
		ev = desktop.Focus{WindowID: wid}
	case "minimize", "maximize", "close":
		action, _ := chrome.ParseAction(op)
		ev = desktop.Control{WindowID: wid, Action: action}
	default:
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("unknown window operation: %s", op)})
		return
	}
	h.dispatch(c, ev)
}

// MoveWindow sets a window position
func (h *Handlers) MoveWindow(c *gin.Context) {
	wid, ok := windowID(c)
	if !ok {
		return
	}
	var req types.PositionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.dispatch(c, desktop.Move{WindowID: wid, Point: req.Point()})
}

// ResizeWindow sets a window size
func (h *Handlers) ResizeWindow(c *gin.Context) {
	wid, ok := windowID(c)
	if !ok {
		return
	}
	var req types.SizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Width <= 0 || req.Height <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "width and height must be positive"})
		return
	}
	h.dispatch(c, desktop.Resize{WindowID: wid, Size: req.Size()})
}

// dispatch applies ev on the session loop and reports whether it changed anything
func (h *Handlers) dispatch(c *gin.Context, ev desktop.Event) {
	desk, ok := h.desktop(c)
	if !ok {
		return
	}
	applied, err := desk.Call(c.Request.Context(), ev)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"applied": applied})
}

func (h *Handlers) desktop(c *gin.Context) (*desktop.Desktop, bool) {
	sid := c.Param("id")
	if err := utils.ValidateID(sid, "session_id", true); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}
	desk, err := h.sessions.Get(sid)
	if err != nil {
		respondError(c, err)
		return nil, false
	}
	return desk, true
}

func windowID(c *gin.Context) (string, bool) {
	wid := c.Param("wid")
	if err := utils.ValidateID(wid, "window_id", true); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return "", false
	}
	return wid, true
}
