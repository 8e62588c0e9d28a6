// Package logging assembles structured slog loggers and formatting helpers used
// across ytt.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so pipeline steps tag log lines
// with the step name and run correlation ID. Logs go to stderr so transcripts
// and command output on stdout stay clean. The package also provides a no-op
// logger for tests and wiring code that cannot fail.
package logging
