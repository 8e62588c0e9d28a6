package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// titleSeparatorReplacer turns dash and colon separators into word breaks.
var titleSeparatorReplacer = strings.NewReplacer(
	"-", " ",
	"–", " ",
	"—", " ",
	":", " ",
)

var lowerCaser = cases.Lower(language.Und)

// SanitizeTitle converts a video title into a lowercase filesystem-safe token.
// Accents are folded to their base letter, dashes and colons become word
// breaks, other punctuation is dropped, and whitespace runs become a single
// underscore. Empty input yields an empty string. The function is idempotent.
func SanitizeTitle(title string) string {
	if strings.TrimSpace(title) == "" {
		return ""
	}
	folded := foldAccents(title)
	folded = titleSeparatorReplacer.Replace(folded)

	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		switch {
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		case isWordRune(r):
			b.WriteRune(r)
		}
	}

	joined := strings.Join(strings.Fields(b.String()), "_")
	return collapseUnderscores(lowerCaser.String(joined))
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func foldAccents(value string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, value)
	if err != nil {
		return value
	}
	return out
}

func collapseUnderscores(value string) string {
	for strings.Contains(value, "__") {
		value = strings.ReplaceAll(value, "__", "_")
	}
	return value
}
