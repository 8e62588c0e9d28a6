package captions

import (
	"net/url"
	"regexp"
	"strings"
)

var videoIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{6,}$`)

// ResolveVideoID extracts the platform video ID from a URL. It recognizes a
// v= query parameter, a shorts/<id> path segment and youtu.be/<id> links.
// It returns "" when no pattern matches.
func ResolveVideoID(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	if id := parsed.Query().Get("v"); validID(id) {
		return id
	}
	segments := strings.Split(strings.Trim(parsed.Path, "/"), "/")
	for i, segment := range segments {
		if segment == "shorts" && i+1 < len(segments) && validID(segments[i+1]) {
			return segments[i+1]
		}
	}
	host := strings.TrimPrefix(strings.ToLower(parsed.Hostname()), "www.")
	if host == "youtu.be" && len(segments) > 0 && validID(segments[0]) {
		return segments[0]
	}
	return ""
}

func validID(id string) bool {
	return videoIDPattern.MatchString(strings.TrimSpace(id))
}
