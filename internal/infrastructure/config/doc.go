// Package config provides 12-factor configuration management for the desktop server.
//
// Configuration is loaded from environment variables with sensible defaults.
// CLI flags can override environment variables for development flexibility.
//
// Configuration Sections:
//   - Server: HTTP server settings (port, host, CORS origins)
//   - Desktop: Session limit, frame rate, animation delay, mobile breakpoint
//   - Storage: Content store driver (memory or sqlite)
//   - Registry: Optional application manifest override (YAML or TOML)
//   - Content: bcrypt hash guarding content edits
//   - Browser: Outbound page preview settings
//   - Logging: Log level and output format
//   - RateLimit: Per-IP rate limiting configuration
//
// Example Usage:
//
//	cfg := config.LoadOrDefault()
//	fmt.Printf("Server running on %s:%s\n", cfg.Server.Host, cfg.Server.Port)
package config
