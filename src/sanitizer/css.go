package sanitizer

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
)

var (
	cssComment = regexp.MustCompile(`(?s)/\*.*?(\*/|$)`)

	// cssString captures the body of a quoted CSS string.
	cssString = regexp.MustCompile(`'([^']*)'|"([^"]*)"`)
)

// cssText reduces a style value or style sheet to the form the remote
// reference checks match against: entities and CSS escapes decoded,
// comments removed, then normalised like any other value.
func cssText(v string) string {
	decoded := decodeCSSEscapes(html.UnescapeString(v))
	return normalizeValue(cssComment.ReplaceAllString(decoded, ""))
}

// decodeCSSEscapes replaces backslash escapes with the characters they
// stand for, so u\72l( reads as url(.
func decodeCSSEscapes(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		if s[i] != '\\' {
			b.WriteByte(s[i])
			i++
			continue
		}
		i++
		if i == len(s) {
			break
		}

		j := i
		for j < len(s) && j-i < 6 && isHexDigit(s[j]) {
			j++
		}
		if j > i {
			n, _ := strconv.ParseUint(s[i:j], 16, 32)
			r := rune(n)
			if r == 0 || !utf8.ValidRune(r) {
				r = utf8.RuneError
			}
			b.WriteRune(r)
			if j+1 < len(s) && s[j] == '\r' && s[j+1] == '\n' {
				j += 2
			} else if j < len(s) && isCSSSpace(s[j]) {
				j++
			}
			i = j
			continue
		}

		if isCSSSpace(s[i]) && s[i] != ' ' && s[i] != '\t' {
			i++
			continue
		}
		_, size := utf8.DecodeRuneInString(s[i:])
		b.WriteString(s[i : i+size])
		i += size
	}
	return b.String()
}

func isCSSSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}

func isHexDigit(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

// imageSetTargets returns the quoted image candidates of every
// image-set() and -webkit-image-set() in css. Candidates given as url()
// are left to the url() check.
func imageSetTargets(css string) []string {
	var out []string
	for i := 0; ; {
		j := strings.Index(css[i:], "image-set(")
		if j < 0 {
			return out
		}
		start := i + j + len("image-set(")
		end := closingParen(css, start)
		for _, m := range cssString.FindAllStringSubmatch(css[start:end], -1) {
			out = append(out, m[1]+m[2])
		}
		i = end
	}
}

// closingParen returns the index of the parenthesis closing the group
// opened just before start, or len(s) when it is never closed.
func closingParen(s string, start int) int {
	depth := 1
	for i := start; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return len(s)
}

func isLocalTarget(target string) bool {
	t := strings.TrimSpace(target)
	return t == "" || strings.HasPrefix(t, "#") || strings.HasPrefix(t, "data:")
}
