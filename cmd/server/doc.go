// Package main is the entry point for the WebDesk server.
//
// The server owns one desktop per browser tab. The page paints scenes it
// receives over the /desktop WebSocket and forwards raw pointer input.
//
// Configuration:
//   - Environment variables (12-factor)
//   - CLI flags (override env vars)
//   - Defaults for development
//
// Usage:
//
//	# Production mode with persisted content
//	./webdesk --port 8000 --storage sqlite --db /var/lib/webdesk.db
//
//	# Development mode (colored logs)
//	./webdesk --dev --log-level debug
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown
package main
