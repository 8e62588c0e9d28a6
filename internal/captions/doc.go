// Package captions fetches platform-provided captions for a video URL.
//
// Fetch never fails the run. It returns a tagged Result: Available with a
// Transcript, or Unavailable with a reason the orchestrator logs before
// falling back to audio transcription.
package captions
