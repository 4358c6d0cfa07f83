// Package logging provides structured logging for appsketch.
//
// This package wraps zap logger with convenience functions for the common
// logging patterns used throughout the tool. Logging is silent by default so
// that command output stays clean; set APPSKETCH_LOG_LEVEL to enable it.
//
// # Log Levels
//
// The package supports standard log levels:
//   - Debug: Detailed debugging info (file events, broadcasts, requests)
//   - Info: Normal operations (parses, client connections, state changes)
//   - Warn: Non-fatal issues (dropped clients, retries)
//   - Error: Fatal issues (startup failures, critical errors)
//
// # Structured Logging
//
// All log functions use structured fields for queryability:
//
//	logging.Info("Document parsed",
//	    zap.String("path", "login.sketch"),
//	    zap.Int("screens", 3),
//	)
//
// # Configuration
//
// Initialize logging at command startup:
//
//	if err := logging.InitializeFromEnv(); err != nil {
//	    return err
//	}
//	defer logging.Sync()
//
// Logs go to stderr in console format so they never mix with rendered
// output on stdout.
//
// # Thread Safety
//
// All logging functions are safe for concurrent use. The underlying zap
// logger handles synchronization automatically.
package logging
