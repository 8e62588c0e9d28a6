// Package chunk splits long audio into fixed-length temporary files so they
// can be transcribed in parallel.
//
// PlanSpans computes the chunk windows with exact decimal arithmetic. Splitter
// probes the source duration, writes one mono 16 kHz WAV per span with ffmpeg,
// and hands back Chunks that the caller releases once transcribed.
package chunk
