// Package logging provides structured logging using uber/zap.
//
// Two output modes:
//   - Production: JSON output for machine parsing
//   - Development: Colored console output for human readability
//
// Subsystems take a named child logger so every line carries its component:
//
//	logger := logging.NewDefault()
//	sessions := session.NewManager(cfg, deps, logger.Component("session"))
//	logger.Info("Server starting", zap.String("port", "8000"))
package logging
