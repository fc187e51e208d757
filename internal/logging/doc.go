// Package logging provides structured logging for treelab.
//
// # Overview
//
// The logging package provides a structured logging interface backed by zap:
//
//   - Multiple log levels (debug, info, warn, error)
//   - Text and JSON output formats
//   - Request ID tracking
//   - Field-based contextual logging
//
// # Creating a Logger
//
// Create a logger with configuration:
//
//	logger := logging.New(logging.Config{
//	    Level:  "info",
//	    Format: "json",
//	    Output: "/var/log/treelab.log",
//	})
//
// Or use defaults:
//
//	logger := logging.NewDefault() // Info level, text format, stdout
//
// For testing, use a no-op logger:
//
//	logger := logging.NewNop()
//
// # Structured Logging
//
// Add key-value pairs to log entries:
//
//	logger.Info("key inserted",
//	    "tree", "bplustree",
//	    "order", 4,
//	    "key", 17,
//	)
//
// Output (JSON format):
//
//	{"level":"info","ts":"2026-02-18T10:30:00.000Z","msg":"key inserted","tree":"bplustree","order":4,"key":17}
//
// # Request ID Tracking
//
//	requestID := logging.GenerateRequestID()
//	reqLogger := logger.WithRequestID(requestID)
//	reqLogger.Info("processing request") // Includes request_id field
//
// # Output Destinations
//
//	logging.Config{Output: "stdout"}               // Standard output
//	logging.Config{Output: "stderr"}               // Standard error
//	logging.Config{Output: "/var/log/treelab.log"} // File path
package logging
