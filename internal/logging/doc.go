// Package logging provides structured logging for the Limewire bridge,
// proxy, and simulator.
//
// This package wraps zap logger with convenience functions for common logging
// patterns used throughout the ground-side processes. It provides both general
// logging functions and specialized functions for the bridge's reconnect and
// write-ahead queue behavior.
//
// # Log Levels
//
// The package supports standard log levels:
//   - Debug: Detailed debugging info (hex dumps, queue depth)
//   - Info: Normal operations (connections, session state changes)
//   - Warn: Non-fatal issues (reconnects, clock resyncs, dropped frames)
//   - Error: Fatal issues (startup failures, critical errors)
//
// # Structured Logging
//
// All log functions use structured fields for queryability:
//
//	logging.Info("session established",
//	    zap.String("remote_addr", "141.212.192.170:5000"),
//	)
//
// # Specialized Logging
//
// The package provides domain-specific logging functions:
//
// Connection and session logging:
//
//	logging.LogConnection(remoteAddr, "connection_accepted")
//	logging.LogSessionState(remoteAddr, "connecting", "connected")
//	logging.LogReconnect(remoteAddr, attempt, backoff)
//
// Bridge runtime logging:
//
//	logging.LogQueueDepth(depth, capacity)
//	logging.LogClockResync(board, reason)
//	logging.LogFrameDrop(remoteAddr, reason)
//
// # Configuration
//
// Initialize logging at process startup:
//
//	if err := logging.InitializeFromEnv(); err != nil {
//	    log.Fatal(err)
//	}
//	defer logging.Sync()
//
// # Output Format
//
// Logs are written to stdout in console format (human-readable). Set
// LIMEWIRE_LOG_LEVEL to "debug", "info", "warn", or "error" to enable
// output; unset, logging is silent.
//
//	2026-07-30T10:30:45.123-0400  INFO  session state transition
//	  remote_addr=141.212.192.170:5000
//	  from=connecting
//	  to=connected
//
// # Thread Safety
//
// All logging functions are safe for concurrent use. The underlying zap logger
// handles synchronization automatically.
package logging
