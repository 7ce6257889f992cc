package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/webdesk/internal/domain/registry"
	"github.com/GriffinCanCode/webdesk/internal/domain/session"
	"github.com/GriffinCanCode/webdesk/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/webdesk/internal/infrastructure/storage"
)

// Version is reported by the root endpoint
const Version = "1.0.0"

// Handlers contains all HTTP handlers
type Handlers struct {
	registry  *registry.Manager
	sessions  *session.Manager
	content   *storage.Content
	metrics   *monitoring.Metrics
	adminHash []byte
	logger    *zap.Logger
}

// Options carries the optional handler dependencies
type Options struct {
	Metrics           *monitoring.Metrics
	AdminPasswordHash string // bcrypt; content edits are refused when empty
	Logger            *zap.Logger
}

// NewHandlers creates a new handler set
func NewHandlers(reg *registry.Manager, sessions *session.Manager, content *storage.Content, opts Options) *Handlers {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	var hash []byte
	if opts.AdminPasswordHash != "" {
		hash = []byte(opts.AdminPasswordHash)
	}
	return &Handlers{
		registry:  reg,
		sessions:  sessions,
		content:   content,
		metrics:   opts.Metrics,
		adminHash: hash,
		logger:    opts.Logger,
	}
}

// Register mounts every REST route on r
func (h *Handlers) Register(r gin.IRouter) {
	r.GET("/", h.Root)
	r.GET("/health", h.Health)
	r.GET("/apps", h.ListApps)

	sessions := r.Group("/sessions")
	sessions.GET("", h.ListSessions)
	sessions.GET("/:id", h.GetSession)
	sessions.DELETE("/:id", h.DeleteSession)
	sessions.GET("/:id/windows", h.ListWindows)
	sessions.POST("/:id/launch/:app", h.LaunchApp)
	sessions.POST("/:id/windows/:wid/:op", h.WindowOp)
	sessions.PUT("/:id/windows/:wid/position", h.MoveWindow)
	sessions.PUT("/:id/windows/:wid/size", h.ResizeWindow)

	r.GET("/content/:key", h.GetContent)
	r.PUT("/content/:key", h.PutContent)

	if h.metrics != nil {
		r.GET("/metrics", gin.WrapH(h.metrics.Handler()))
		r.GET("/metrics/json", h.MetricsJSON)
	}
}

// Root handles the service banner
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "online",
		"service": "WebDesk Desktop Service",
		"version": Version,
	})
}

// Health handles detailed health check
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"sessions": h.sessions.Stats(),
		"registry": h.registry.Stats(),
	})
}

// ListApps lists the registered applications
func (h *Handlers) ListApps(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"apps":  h.registry.List(),
		"stats": h.registry.Stats(),
	})
}

// MetricsJSON returns the running totals alongside session stats
func (h *Handlers) MetricsJSON(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"http":     h.metrics.Snapshot(),
		"sessions": h.sessions.Stats(),
	})
}

// respondError maps domain errors to status codes
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, session.ErrSessionNotFound), errors.Is(err, storage.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, session.ErrTooManySessions):
		status = http.StatusServiceUnavailable
	case errors.Is(err, registry.ErrUnknownKind):
		status = http.StatusBadRequest
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
