// Package logging provides structured logging for the Lyngdorf driver.
//
// This package wraps zap logger with convenience functions for common logging
// patterns used throughout the driver. It provides both general logging
// functions and specialized functions for protocol-specific logging needs.
//
// # Log Levels
//
// The package supports standard log levels:
//   - Debug: Detailed debugging info (wire dumps, frame decoding, ping/pong)
//   - Info: Normal operations (connections, state changes)
//   - Warn: Non-fatal issues (malformed frames, missed keep-alives)
//   - Error: Fatal issues (connect failures, critical errors)
//
// # Structured Logging
//
// All log functions use structured fields for queryability:
//
//	logging.Info("Device connected",
//	    zap.String("remote_addr", "192.168.1.100:84"),
//	    zap.String("model", "mp-60"),
//	)
//
// # Specialized Logging
//
// The package provides domain-specific logging functions:
//
// Connection Logging:
//
//	logging.LogConnection(remoteAddr, "connected")
//	logging.LogConnection(remoteAddr, "connection_lost")
//
// Wire Logging:
//
//	logging.LogWire("sent", frame)
//	logging.LogWire("received", frame)
//
// # Configuration
//
// Logging is silent by default so library users and CLI output stay clean.
// Set LYNGDORF_LOG_LEVEL to enable it:
//
//	LYNGDORF_LOG_LEVEL=debug lyngdorf-ctl watch 192.168.1.100
//
// Or initialize explicitly:
//
//	if err := logging.Initialize("debug"); err != nil {
//	    log.Fatal(err)
//	}
//	defer logging.Sync()
//
// # Thread Safety
//
// All logging functions are safe for concurrent use. The underlying zap logger
// handles synchronization automatically.
package logging
