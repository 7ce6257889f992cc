// Package middleware provides the HTTP middleware for the desktop server.
//
// Middleware stack includes:
//   - RequestID: req_ ULID per request, echoed in X-Request-ID
//   - Logger: one zap line per request, level chosen by status
//   - CORS: Cross-origin resource sharing with configurable origins
//   - RateLimit: Per-IP token bucket rate limiting with idle eviction
//
// Example Usage:
//
//	router.Use(middleware.RequestID(), middleware.Logger(logger))
//	router.Use(middleware.CORS(middleware.DefaultCORSConfig(cfg.Server.AllowedOrigins...)))
//	router.Use(middleware.RateLimit(middleware.DefaultRateLimitConfig()))
package middleware
