package sanitizer

import (
	"strings"
	"unicode"

	"golang.org/x/net/html"
	"golang.org/x/text/unicode/norm"
)

// normalizeValue prepares an attribute value for scheme and reference
// checks. Entity references left over after XML decoding are decoded
// again, the text is NFKC normalised so full-width look-alikes collapse to
// ASCII, and invisible characters are dropped.
func normalizeValue(v string) string {
	decoded := html.UnescapeString(v)
	normalized := norm.NFKC.String(decoded)

	var b strings.Builder
	b.Grow(len(normalized))
	for _, r := range normalized {
		if shouldRemove(r) {
			continue
		}
		b.WriteRune(r)
	}
	return strings.ToLower(strings.TrimSpace(b.String()))
}

// shouldRemove returns true for characters that browsers ignore inside
// URLs: whitespace, control, format and private use characters.
func shouldRemove(r rune) bool {
	if r == ' ' {
		return false
	}
	if unicode.IsSpace(r) {
		return true
	}
	return unicode.In(r,
		unicode.Cf, // Format (zero-width joiners, directional marks, etc.)
		unicode.Co, // Private use
		unicode.Cc, // Control
	)
}
