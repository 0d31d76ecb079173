// Package htmltext reduces rich-text editor output to plain text.
// It is a tag stripper, not an HTML parser; good enough to decide
// whether a field holds any real content and to build list snippets.
package htmltext

import (
	"regexp"
	"strings"
)

var (
	tagPattern    = regexp.MustCompile(`<[^>]*>`)
	spacePattern  = regexp.MustCompile(`\s+`)
	entityReplace = strings.NewReplacer(
		"&nbsp;", " ",
		"&amp;", "&",
		"&lt;", "<",
		"&gt;", ">",
		"&quot;", `"`,
		"&#39;", "'",
	)
)

// StripTags removes HTML tags and decodes the handful of entities that
// rich-text editors emit, then trims surrounding whitespace.
func StripTags(s string) string {
	s = tagPattern.ReplaceAllString(s, "")
	s = entityReplace.Replace(s)
	return strings.TrimSpace(s)
}

// Snippet returns a single-line plain-text preview of at most max runes.
func Snippet(s string, max int) string {
	plain := StripTags(s)
	plain = spacePattern.ReplaceAllString(plain, " ")
	runes := []rune(plain)
	if len(runes) <= max {
		return plain
	}
	return string(runes[:max]) + "..."
}
