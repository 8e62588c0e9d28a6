// Package whisperx runs WhisperX through uvx to transcribe audio files.
//
// Each call writes WhisperX's JSON output into a scratch directory next to
// the audio, decodes the segment list, and removes the scratch directory.
// Model, device, VAD method, and language come from Config.
package whisperx
