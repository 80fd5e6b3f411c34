// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance supporting different environments
// (development vs production). There is no process-wide singleton: commands
// build a logger once and pass it into the components that need it.
//
// # Configuration
//
// The package supports configuration for:
//   - Level: debug, info, warn, error
//   - Format: json (production) or console (development)
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info", Format: "console"})
//	log.Info("Sync started")
package logger
