// Package log provides structured negotiation logging for zcbus.
//
// This package defines the Logger interface and Event types for capturing
// what happened when participants created, opened or released services:
// which operation ran, which branch of open-or-create produced the result,
// which type descriptors were negotiated and which status the registry
// reported. It is separate from operational logging (slog) - the event log is
// a complete machine-readable trace for debugging compatibility problems
// between processes.
//
// # Basic Usage
//
// Applications configure logging through the registry options:
//
//	// For development: log to console via slog
//	opts.EventLogger = log.NewSlogAdapter(slog.Default())
//
//	// For production: write to binary file
//	opts.EventLogger, _ = log.NewFileLogger("/var/log/zcbus/node.zlog")
//
//	// Both: use MultiLogger
//	opts.EventLogger = log.NewMultiLogger(
//	    log.NewSlogAdapter(slog.Default()),
//	    fileLogger,
//	)
//
// # Event Types
//
//   - Negotiation: one open, create or open-or-create attempt (NegotiationEvent)
//   - Lifecycle: a service was created, opened, released or destroyed (LifecycleEvent)
//   - Error: failures that are not the outcome of a negotiation (ErrorEventData)
//
// # File Format
//
// Log files are a sequence of CBOR encoded events with the .zlog extension.
// The zcbus-log CLI tool provides viewing, filtering, and export capabilities.
package log
