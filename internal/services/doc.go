// Package services defines shared utilities consumed by the pipeline steps and
// external integrations.
//
// Key responsibilities:
//   - Context helpers that stamp run correlation identifiers and step names
//     for logging.
//   - Structured error markers plus the Wrap helper so failures from yt-dlp,
//     ffmpeg, WhisperX or the filesystem can be classified with errors.Is.
//
// Use these helpers when wiring new pipeline logic so error handling and
// observability stay uniform across components.
package services
