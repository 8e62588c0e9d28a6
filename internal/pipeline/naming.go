package pipeline

import (
	"strings"

	"ytt/internal/textutil"
)

const (
	defaultStem     = "transcript"
	defaultFileName = defaultStem + ".txt"
)

// deriveFileName builds the transcript file name from the sanitized video
// title, then the raw video ID, then a fixed stem.
func deriveFileName(title, videoID string) string {
	stem := textutil.SanitizeTitle(title)
	if stem == "" {
		stem = strings.TrimSpace(videoID)
	}
	if stem == "" {
		stem = defaultStem
	}
	return stem + ".txt"
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
