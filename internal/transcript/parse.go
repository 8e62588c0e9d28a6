package transcript

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
)

// ErrMalformedSegment reports a segment record missing start, end, or text.
var ErrMalformedSegment = errors.New("malformed transcript segment")

var timestampedLine = regexp.MustCompile(`^\[(\d+):(\d{2}):(\d{2}) -> (\d+):(\d{2}):(\d{2})\]\s?(.*)$`)

// ParseTimestamped reads lines of the form "[HH:MM:SS -> HH:MM:SS] text".
// Lines that do not match are ignored.
func ParseTimestamped(r io.Reader) ([]Segment, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var segments []Segment
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		m := timestampedLine.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			continue
		}
		segments = append(segments, Segment{
			Start: clockSeconds(m[1], m[2], m[3]),
			End:   clockSeconds(m[4], m[5], m[6]),
			Text:  strings.TrimSpace(m[7]),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read transcript: %w", err)
	}
	return segments, nil
}

func clockSeconds(h, m, s string) float64 {
	hours, _ := strconv.Atoi(h)
	minutes, _ := strconv.Atoi(m)
	secs, _ := strconv.Atoi(s)
	return float64(hours*3600 + minutes*60 + secs)
}

type rawSegment struct {
	Start *float64 `json:"start"`
	End   *float64 `json:"end"`
	Text  *string  `json:"text"`
}

type rawTranscript struct {
	Segments []rawSegment `json:"segments"`
	Text     string       `json:"text"`
	Language string       `json:"language"`
}

// DecodeSegments decodes either a bare JSON array of segments or an object
// with a "segments" array, as produced by WhisperX and similar tools. A record
// without start, end, or text yields ErrMalformedSegment.
func DecodeSegments(data []byte) (Transcript, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return Transcript{}, errors.New("decode segments: empty payload")
	}

	var raw rawTranscript
	if trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &raw.Segments); err != nil {
			return Transcript{}, fmt.Errorf("decode segments: %w", err)
		}
	} else if err := json.Unmarshal(trimmed, &raw); err != nil {
		return Transcript{}, fmt.Errorf("decode segments: %w", err)
	}

	segments := make([]Segment, 0, len(raw.Segments))
	for i, seg := range raw.Segments {
		switch {
		case seg.Start == nil:
			return Transcript{}, fmt.Errorf("%w: segment %d missing start", ErrMalformedSegment, i)
		case seg.End == nil:
			return Transcript{}, fmt.Errorf("%w: segment %d missing end", ErrMalformedSegment, i)
		case seg.Text == nil:
			return Transcript{}, fmt.Errorf("%w: segment %d missing text", ErrMalformedSegment, i)
		}
		segments = append(segments, Segment{Start: *seg.Start, End: *seg.End, Text: *seg.Text})
	}

	out := New(segments, strings.TrimSpace(raw.Language))
	if text := strings.TrimSpace(raw.Text); text != "" {
		out.Text = text
	}
	return out, nil
}
