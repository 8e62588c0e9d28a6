package transcript

import "strings"

// Segment is one timed span of recognized or captioned speech. Times are in
// seconds from the start of the source.
type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// Shift returns the segment moved later by offset seconds.
func (s Segment) Shift(offset float64) Segment {
	s.Start += offset
	s.End += offset
	return s
}

// Transcript is the result of a captions lookup or a transcription run.
type Transcript struct {
	Segments []Segment `json:"segments"`
	Text     string    `json:"text"`
	Language string    `json:"language,omitempty"`
}

// JoinText concatenates trimmed segment texts with single spaces.
func JoinText(segments []Segment) string {
	parts := make([]string, 0, len(segments))
	for _, seg := range segments {
		if text := strings.TrimSpace(seg.Text); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, " ")
}

// New builds a transcript whose text is derived from the segments.
func New(segments []Segment, language string) Transcript {
	return Transcript{Segments: segments, Text: JoinText(segments), Language: language}
}
