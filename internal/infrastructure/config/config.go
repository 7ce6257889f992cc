package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Desktop   DesktopConfig
	Storage   StorageConfig
	Registry  RegistryConfig
	Content   ContentConfig
	Browser   BrowserConfig
	Logging   LogConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port            string        `envconfig:"PORT" default:"8000"`
	Host            string        `envconfig:"HOST" default:"0.0.0.0"`
	AllowedOrigins  []string      `envconfig:"ALLOWED_ORIGINS" default:"*"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
}

// DesktopConfig holds per-session desktop tunables.
type DesktopConfig struct {
	MaxSessions      int           `envconfig:"MAX_SESSIONS" default:"256"`
	FrameRate        int           `envconfig:"FRAME_RATE" default:"60"`
	AnimationDelay   time.Duration `envconfig:"ANIMATION_DELAY" default:"200ms"`
	MobileBreakpoint int           `envconfig:"MOBILE_BREAKPOINT" default:"768"`
	DockReservation  int           `envconfig:"DOCK_RESERVATION" default:"80"`
	Title            string        `envconfig:"DESKTOP_TITLE" default:"Linux Portfolio"`
}

// StorageConfig selects the content store driver.
type StorageConfig struct {
	Driver string `envconfig:"STORAGE_DRIVER" default:"memory"`
	Path   string `envconfig:"STORAGE_PATH" default:"webdesk.db"`
}

// RegistryConfig points at an optional application manifest override.
type RegistryConfig struct {
	Manifest string `envconfig:"APPS_MANIFEST"`
}

// ContentConfig guards content editing. Editing is disabled without a hash.
type ContentConfig struct {
	AdminPasswordHash string `envconfig:"ADMIN_PASSWORD_HASH"`
}

// BrowserConfig controls outbound page previews.
type BrowserConfig struct {
	PreviewEnabled bool          `envconfig:"BROWSER_PREVIEW" default:"false"`
	Timeout        time.Duration `envconfig:"BROWSER_TIMEOUT" default:"10s"`
	RateLimit      float64       `envconfig:"BROWSER_RPS" default:"5"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" default:"100"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" default:"200"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Validate rejects values the server cannot run with.
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case "memory", "sqlite":
	default:
		return fmt.Errorf("invalid storage driver %q", c.Storage.Driver)
	}
	if c.Desktop.MaxSessions <= 0 {
		return fmt.Errorf("max sessions must be positive, got %d", c.Desktop.MaxSessions)
	}
	if c.Desktop.FrameRate <= 0 || c.Desktop.FrameRate > 240 {
		return fmt.Errorf("frame rate out of range: %d", c.Desktop.FrameRate)
	}
	return nil
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            "8000",
			Host:            "0.0.0.0",
			AllowedOrigins:  []string{"*"},
			ShutdownTimeout: 10 * time.Second,
		},
		Desktop: DesktopConfig{
			MaxSessions:      256,
			FrameRate:        60,
			AnimationDelay:   200 * time.Millisecond,
			MobileBreakpoint: 768,
			DockReservation:  80,
			Title:            "Linux Portfolio",
		},
		Storage: StorageConfig{
			Driver: "memory",
			Path:   "webdesk.db",
		},
		Browser: BrowserConfig{
			Timeout:   10 * time.Second,
			RateLimit: 5,
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 100,
			Burst:             200,
			Enabled:           true,
		},
	}
}
