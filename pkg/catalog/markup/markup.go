// Package markup renders product descriptions, which carry a small
// markdown-like syntax (bold, italics, line breaks), into markup-safe
// HTML fragments.
package markup

import (
	"regexp"
	"strings"
)

var (
	escaper = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&#39;",
	)
	strongSpan = regexp.MustCompile(`\*\*(.*?)\*\*`)
	emSpan     = regexp.MustCompile(`\*(.*?)\*`)
)

// Format converts a raw description into an HTML fragment safe for direct
// embedding. Special characters are escaped first, then **bold** and
// *italic* spans are substituted in two sequential passes, then line
// endings become <br>. The strong pass runs before the emphasis pass so
// double-asterisk spans are never re-matched as two italic spans.
func Format(raw string) string {
	if raw == "" {
		return ""
	}
	s := escaper.Replace(raw)
	s = strongSpan.ReplaceAllString(s, "<strong>$1</strong>")
	s = emSpan.ReplaceAllString(s, "<em>$1</em>")
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return strings.ReplaceAll(s, "\n", "<br>")
}
