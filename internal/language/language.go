package language

import (
	"strings"
	"sync"
)

// name lists every code and word form a language answers to. The first code
// is the ISO 639-1 form; the rest are ISO 639-2 variants.
type name struct {
	codes   []string
	display string
}

var names = []name{
	{[]string{"en", "eng"}, "English"},
	{[]string{"es", "spa"}, "Spanish"},
	{[]string{"fr", "fra", "fre"}, "French"},
	{[]string{"de", "deu", "ger"}, "German"},
	{[]string{"it", "ita"}, "Italian"},
	{[]string{"pt", "por"}, "Portuguese"},
	{[]string{"ja", "jpn"}, "Japanese"},
	{[]string{"ko", "kor"}, "Korean"},
	{[]string{"zh", "zho", "chi"}, "Chinese"},
	{[]string{"ru", "rus"}, "Russian"},
	{[]string{"ar", "ara"}, "Arabic"},
	{[]string{"hi", "hin"}, "Hindi"},
	{[]string{"nl", "nld", "dut"}, "Dutch"},
	{[]string{"pl", "pol"}, "Polish"},
	{[]string{"sv", "swe"}, "Swedish"},
	{[]string{"da", "dan"}, "Danish"},
	{[]string{"no", "nor"}, "Norwegian"},
	{[]string{"fi", "fin"}, "Finnish"},
	{[]string{"tr", "tur"}, "Turkish"},
	{[]string{"uk", "ukr"}, "Ukrainian"},
	{[]string{"cs", "ces", "cze"}, "Czech"},
	{[]string{"el", "ell", "gre"}, "Greek"},
	{[]string{"he", "heb"}, "Hebrew"},
	{[]string{"id", "ind"}, "Indonesian"},
	{[]string{"vi", "vie"}, "Vietnamese"},
}

// index maps lowercase codes and display names to their entry.
var index = sync.OnceValue(func() map[string]*name {
	m := make(map[string]*name, len(names)*4)
	for i := range names {
		n := &names[i]
		for _, code := range n.codes {
			m[code] = n
		}
		m[strings.ToLower(n.display)] = n
	}
	return m
})

func lookup(code string) *name {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return nil
	}
	return index()[code]
}

// ToISO2 converts any recognized language code, word form, or region tag to
// ISO 639-1. Unknown 2-letter codes pass through; anything else yields "".
func ToISO2(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return ""
	}
	if n := lookup(code); n != nil {
		return n.codes[0]
	}
	if base, ok := splitRegion(code); ok {
		return ToISO2(base)
	}
	if len(code) == 2 {
		return code
	}
	return ""
}

// Matches reports whether a caption track tag satisfies a preferred language.
// "en" matches "en", "en-US", and "eng"; "en-gb" matches only "en-GB".
func Matches(preferred, tag string) bool {
	preferred = strings.ToLower(strings.TrimSpace(preferred))
	tag = strings.ToLower(strings.TrimSpace(tag))
	if preferred == "" || tag == "" {
		return false
	}
	if preferred == tag {
		return true
	}
	if _, ok := splitRegion(preferred); ok {
		return strings.ReplaceAll(preferred, "_", "-") == strings.ReplaceAll(tag, "_", "-")
	}
	return ToISO2(preferred) != "" && ToISO2(preferred) == ToISO2(tag)
}

// splitRegion returns the primary subtag of a region-qualified tag.
func splitRegion(code string) (string, bool) {
	idx := strings.IndexAny(code, "-_")
	if idx <= 0 || idx == len(code)-1 {
		return "", false
	}
	return code[:idx], true
}

// DisplayName returns a human-readable language name for any recognized code.
// Returns "Unknown" for empty input, or the uppercased code for unrecognized input.
func DisplayName(code string) string {
	if strings.TrimSpace(code) == "" {
		return "Unknown"
	}
	if n := lookup(code); n != nil {
		return n.display
	}
	return strings.ToUpper(strings.TrimSpace(code))
}

// NormalizeList deduplicates and normalizes a list of language codes to ISO
// 639-1. Region tags such as "pt-br" are kept so a specific variant can be
// preferred.
func NormalizeList(languages []string) []string {
	if len(languages) == 0 {
		return nil
	}
	normalized := make([]string, 0, len(languages))
	seen := make(map[string]struct{}, len(languages))
	for _, lang := range languages {
		trimmed := strings.ToLower(strings.TrimSpace(lang))
		if trimmed == "" {
			continue
		}
		trimmed = strings.ReplaceAll(trimmed, "_", "-")
		if _, regional := splitRegion(trimmed); !regional && len(trimmed) > 2 {
			if mapped := ToISO2(trimmed); mapped != "" {
				trimmed = mapped
			}
		}
		if _, ok := seen[trimmed]; ok {
			continue
		}
		seen[trimmed] = struct{}{}
		normalized = append(normalized, trimmed)
	}
	return normalized
}
