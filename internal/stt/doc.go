// Package stt defines the speech-to-text contract and the parallel chunk
// transcriber.
//
// Backends live in subpackages (whisperx, openai) and are selected by New from
// the transcription.backend setting. TranscribeChunks fans chunk files out to
// a bounded worker pool, shifts each chunk's local timings onto the source
// timeline, and merges the results sorted by start time. A failed chunk is
// logged and dropped; every chunk file is released once its transcription
// returns, whatever the outcome.
package stt
