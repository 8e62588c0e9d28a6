// Package transcript holds the segment model shared by the captions client,
// the speech-to-text backends, and the formatter.
//
// Format renders segments either as timestamped lines or as one plain
// paragraph. ParseTimestamped and DecodeSegments read those lines and the JSON
// segment lists emitted by transcription tools back into segments, so an
// existing transcript can be re-rendered without re-running transcription.
package transcript
