// Package ffprobe provides a typed wrapper around ffprobe JSON output.
//
// Inspect executes ffprobe and returns the parsed Result. Duration reports the
// audio length as an exact decimal so chunk planning can cover the source
// without rounding drift.
package ffprobe
