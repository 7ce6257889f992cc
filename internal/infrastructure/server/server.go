package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apihttp "github.com/GriffinCanCode/webdesk/internal/api/http"
	"github.com/GriffinCanCode/webdesk/internal/api/middleware"
	"github.com/GriffinCanCode/webdesk/internal/api/ws"
	"github.com/GriffinCanCode/webdesk/internal/apps"
	"github.com/GriffinCanCode/webdesk/internal/apps/browser"
	"github.com/GriffinCanCode/webdesk/internal/apps/vfs"
	"github.com/GriffinCanCode/webdesk/internal/domain/desktop"
	"github.com/GriffinCanCode/webdesk/internal/domain/registry"
	"github.com/GriffinCanCode/webdesk/internal/domain/session"
	"github.com/GriffinCanCode/webdesk/internal/infrastructure/config"
	"github.com/GriffinCanCode/webdesk/internal/infrastructure/logging"
	"github.com/GriffinCanCode/webdesk/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/webdesk/internal/infrastructure/storage"
)

// Server wraps the HTTP server and dependencies
type Server struct {
	router   *gin.Engine
	http     *http.Server
	registry *registry.Manager
	sessions *session.Manager
	content  *storage.Content
	logger   *logging.Logger
	config   *config.Config
	metrics  *monitoring.Metrics
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger, err := logging.New(logging.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Logging.Development,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	logger.Info("Initializing WebDesk server",
		zap.String("port", cfg.Server.Port),
		zap.String("storage", cfg.Storage.Driver),
		zap.Int("max_sessions", cfg.Desktop.MaxSessions),
	)

	metrics := monitoring.NewMetrics()

	// Content store
	driver, err := storage.Open(storage.Config{Driver: cfg.Storage.Driver, Path: cfg.Storage.Path})
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}
	content := storage.NewContent(driver, logger.Component("storage"))

	// Application registry
	appRegistry := registry.NewManager()
	if err := registry.NewSeeder(appRegistry, logger.Component("registry")).Seed(cfg.Registry.Manifest); err != nil {
		_ = content.Close()
		return nil, fmt.Errorf("failed to seed apps: %w", err)
	}
	metrics.SetRegistryApps(appRegistry.Len())

	deps := apps.Deps{
		Content:       content,
		PortfolioKey:  storage.KeyPortfolio,
		BrightnessKey: storage.KeyBrightness,
		FS:            vfs.Default(),
	}
	if cfg.Browser.PreviewEnabled {
		opts := browser.DefaultFetcherOptions()
		opts.Timeout = cfg.Browser.Timeout
		opts.RateLimit = cfg.Browser.RateLimit
		deps.Fetcher = browser.NewFetcher(opts, logger.Component("browser"))
		logger.Info("Browser previews enabled", zap.Float64("rps", cfg.Browser.RateLimit))
	}
	catalog, err := apps.NewCatalog(deps)
	if err != nil {
		_ = content.Close()
		return nil, fmt.Errorf("failed to build app catalog: %w", err)
	}

	// Sessions
	sessions := session.NewManager(
		session.Config{MaxSessions: cfg.Desktop.MaxSessions, Desktop: desktopConfig(cfg.Desktop)},
		desktop.Deps{
			Registry: appRegistry,
			Apps:     catalog,
			Notifier: content,
			Logger:   logger.Component("desktop"),
			Metrics:  metrics,
		},
		logger.Component("session"),
	)
	sessions.SetMetrics(metrics)

	// Router
	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger.Component("http")))
	router.Use(monitoring.Middleware(metrics))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig(cfg.Server.AllowedOrigins...)))
	if cfg.RateLimit.Enabled {
		logger.Info("Rate limiting enabled",
			zap.Int("rps", cfg.RateLimit.RequestsPerSecond),
			zap.Int("burst", cfg.RateLimit.Burst),
		)
		rl := middleware.DefaultRateLimitConfig()
		rl.RequestsPerSecond = cfg.RateLimit.RequestsPerSecond
		rl.Burst = cfg.RateLimit.Burst
		router.Use(middleware.RateLimit(rl))
	}

	handlers := apihttp.NewHandlers(appRegistry, sessions, content, apihttp.Options{
		Metrics:           metrics,
		AdminPasswordHash: cfg.Content.AdminPasswordHash,
		Logger:            logger.Component("api"),
	})
	handlers.Register(router)

	wsHandler := ws.NewHandler(sessions, ws.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Metrics:        metrics,
		Logger:         logger.Component("api"),
	})
	router.GET("/desktop", wsHandler.HandleConnection)

	logger.Info("Server initialized successfully", zap.Int("apps", appRegistry.Len()))

	return &Server{
		router:   router,
		registry: appRegistry,
		sessions: sessions,
		content:  content,
		logger:   logger,
		config:   cfg,
		metrics:  metrics,
	}, nil
}

// desktopConfig maps server settings onto the per-session desktop config
func desktopConfig(c config.DesktopConfig) desktop.Config {
	cfg := desktop.DefaultConfig()
	cfg.Title = c.Title
	cfg.FrameRate = c.FrameRate
	cfg.DockReservation = c.DockReservation
	cfg.Chrome.Delay = c.AnimationDelay
	cfg.Chrome.Breakpoint = c.MobileBreakpoint
	return cfg
}

// Router exposes the configured gin engine
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Sessions exposes the session manager
func (s *Server) Sessions() *session.Manager {
	return s.sessions
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	addr := net.JoinHostPort(s.config.Server.Host, s.config.Server.Port)
	s.http = &http.Server{Addr: addr, Handler: s.router}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.config.Server.ShutdownTimeout)
	defer cancel()
	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}

// Close releases sessions and storage
func (s *Server) Close() error {
	s.logger.Info("Shutting down server...")

	s.sessions.CloseAll()
	s.logger.Info("Closed sessions")

	var errs []error
	if err := s.content.Close(); err != nil {
		s.logger.Error("Failed to close storage", zap.Error(err))
		errs = append(errs, fmt.Errorf("failed to close storage: %w", err))
	}

	// Sync logger before exit
	_ = s.logger.Sync()

	return errors.Join(errs...)
}
