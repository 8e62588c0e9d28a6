// Package pipeline runs one transcription request end to end.
//
// Runner.Run tries published captions first and falls back to downloading
// the audio and transcribing it, either in parallel chunks or in a single
// backend call. The formatted transcript is written under the output
// directory with an advisory lock, and the downloaded audio is optionally
// moved next to it. Each run carries a correlation ID in its context so every
// log line can be traced back to one invocation.
package pipeline
