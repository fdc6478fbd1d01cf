package goquery

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var spaceRe = regexp.MustCompile(`\s+`)

// CleanText collapses runs of whitespace (including non-breaking spaces)
// into single spaces and trims the result.
func CleanText(s string) string {
	s = strings.ReplaceAll(s, " ", " ")
	return strings.TrimSpace(spaceRe.ReplaceAllString(s, " "))
}

// Fold lowercases s and strips diacritics so that "Pós-Graduação" and
// "pos-graduacao" compare equal.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(CleanText(out))
}

// containsAny reports whether the folded form of s contains any of the
// folded needles.
func containsAny(s string, needles ...string) bool {
	f := Fold(s)
	for _, n := range needles {
		if strings.Contains(f, Fold(n)) {
			return true
		}
	}
	return false
}

// equalsAny reports whether s equals one of values after folding and
// trimming trailing colons.
func equalsAny(s string, values ...string) bool {
	f := strings.TrimRight(Fold(s), ": ")
	for _, v := range values {
		if f == strings.TrimRight(Fold(v), ": ") {
			return true
		}
	}
	return false
}

// stateEntities are the placeholders server-side rendering substitutes for
// characters inside the embedded application-state script.
var stateEntities = strings.NewReplacer(
	"&q;", `"`,
	"&s;", "'",
	"&l;", "<",
	"&g;", ">",
	"&a;", "&",
)

// UnescapeState restores an application-state blob whose quote and markup
// characters were replaced by entity placeholders.
func UnescapeState(s string) string {
	return stateEntities.Replace(strings.TrimSpace(s))
}

// linkPath returns the lowercased path of href without query or fragment.
func linkPath(href string) string {
	href = strings.ToLower(strings.TrimSpace(href))
	if i := strings.IndexAny(href, "?#"); i != -1 {
		href = href[:i]
	}
	return href
}
