package transcript

import (
	"fmt"
	"math"
	"strings"
)

// FormatTimestamp renders seconds as zero-padded HH:MM:SS. Hours are not
// capped at 24. Fractions are truncated and negative input clamps to zero.
func FormatTimestamp(seconds float64) string {
	if math.IsNaN(seconds) || seconds < 0 {
		seconds = 0
	}
	total := int64(math.Floor(seconds))
	hours := total / 3600
	minutes := (total % 3600) / 60
	secs := total % 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, secs)
}

// Format renders segments as transcript text. With timestamps each segment
// becomes one "[HH:MM:SS -> HH:MM:SS] text" line in input order. Without,
// segment texts are joined into one paragraph with whitespace collapsed and a
// single trailing newline.
func Format(segments []Segment, timestamps bool) string {
	var b strings.Builder
	if timestamps {
		for _, seg := range segments {
			b.WriteByte('[')
			b.WriteString(FormatTimestamp(seg.Start))
			b.WriteString(" -> ")
			b.WriteString(FormatTimestamp(seg.End))
			b.WriteString("] ")
			b.WriteString(strings.TrimSpace(seg.Text))
			b.WriteByte('\n')
		}
		return b.String()
	}

	for i, seg := range segments {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(strings.TrimSpace(seg.Text))
	}
	return strings.Join(strings.Fields(b.String()), " ") + "\n"
}
