package models

import (
	"regexp"
	"strings"
)

// languageTag matches "[:en]" style segment openers and the bare "[:]" closer.
var languageTag = regexp.MustCompile(`\[:([a-z]{2})?\]`)

// KeepLanguage strips every language segment of a multi-language blob
// except lang. Text outside any segment is kept. A blob without segment
// markers is returned unchanged.
func KeepLanguage(lang, blob string) string {
	matches := languageTag.FindAllStringSubmatchIndex(blob, -1)
	if len(matches) == 0 {
		return blob
	}

	var b strings.Builder
	current := ""
	pos := 0
	for _, m := range matches {
		if current == "" || current == lang {
			b.WriteString(blob[pos:m[0]])
		}
		current = ""
		if m[2] >= 0 {
			current = blob[m[2]:m[3]]
		}
		pos = m[1]
	}
	if current == "" || current == lang {
		b.WriteString(blob[pos:])
	}
	return strings.TrimSpace(b.String())
}
