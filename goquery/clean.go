package goquery

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Boilerplate removed from program names, in order. Later patterns assume
// the document-type labels handled by earlier ones are already gone.
var (
	docTypePrefixRe = regexp.MustCompile(`(?i)^(?:teses|tese|disserta[cç](?:[oõ]es|[aã]o)|theses|dissertations|trabalhos?\s+de\s+conclus[aã]o(?:\s+de\s+curso)?)(?:\s+(?:e|and)\s+(?:disserta[cç][oõ]es|teses|dissertations|theses))?(?:\s+(?:de|do)\s+(?:mestrado|doutorado))?\s*[-–:/|]\s*`)

	programPrefixRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)^programa\s+(?:de\s+)?p[oó]s[\s-]*gradua[cç][aã]o\s+(?:stricto\s+sensu\s+)?(?:(?:profissional|acad[eê]mico)\s+)?(?:em|de|da|do|das|dos|na|no|nas|nos)\s+`),
		regexp.MustCompile(`(?i)^programa\s+de\s+(?:mestrado|doutorado)(?:\s+e\s+(?:mestrado|doutorado))?(?:\s+(?:profissional|acad[eê]mico))?\s+(?:em|de|na|no)\s+`),
		regexp.MustCompile(`(?i)^p[oó]s[\s-]*gradua[cç][aã]o\s+(?:stricto\s+sensu\s+)?(?:em|de|da|do|na|no)\s+`),
		regexp.MustCompile(`(?i)^(?:mestrado|doutorado)(?:\s+(?:profissional|acad[eê]mico))?(?:\s+e\s+(?:mestrado|doutorado))?(?:\s+(?:profissional|acad[eê]mico))?\s+(?:em|de|na|no)\s+`),
		regexp.MustCompile(`(?i)^(?:post-?\s?graduate|graduate)\s+program(?:me)?\s+(?:in|of|on)\s+`),
		regexp.MustCompile(`(?i)^(?:(?:master'?s?|doctorate|doctoral|ph\.?d\.?)\s*/\s*)?(?:master'?s?|doctorate|doctoral|ph\.?d\.?)(?:\s+(?:degree|program(?:me)?))?\s+(?:in|of)\s+`),
	}

	qualifierSuffixRe = regexp.MustCompile(`(?i)\s*\(\s*(?:mestrado|doutorado|profissional|acad[eê]mico|master'?s?|doctorate|ph\.?d\.?)[^)]*\)\s*$`)
	acronymSuffixRe   = regexp.MustCompile(`\s*\(\s*[A-ZÀ-Ý0-9][A-ZÀ-Ýa-z0-9./&-]*[A-ZÀ-Ý0-9]\s*\)\s*$`)
	dashAcronymRe     = regexp.MustCompile(`^(.*\S)\s+[-–]\s+([A-ZÀ-Ý][A-ZÀ-Ý0-9]+)\s*$`)
	docTypeSuffixRe   = regexp.MustCompile(`(?i)\s*[-–:|]\s*(?:teses|disserta[cç][oõ]es|theses|dissertations|teses\s+e\s+disserta[cç][oõ]es|(?:mestrado|doutorado)(?:\s+e\s+(?:mestrado|doutorado))?(?:\s+(?:profissional|acad[eê]mico))?)\s*$`)
	trailingPunctRe   = regexp.MustCompile(`[\s.,;:–-]+$`)
)

// NameCleaner normalizes a raw program name.
type NameCleaner interface {
	CleanProgramName(raw string) string
}

// CleanerFunc adapts a function to NameCleaner.
type CleanerFunc func(raw string) string

// CleanProgramName calls f(raw).
func (f CleanerFunc) CleanProgramName(raw string) string {
	return f(raw)
}

// Cleaner strips institutional boilerplate from program names.
// Substitutions are repeated until the name stops changing, which makes
// cleaning idempotent.
type Cleaner struct {
	extra []*regexp.Regexp
}

// NewCleaner returns a Cleaner that also removes every match of the extra
// patterns before applying the standard substitutions.
func NewCleaner(extra ...*regexp.Regexp) *Cleaner {
	return &Cleaner{extra: extra}
}

// DefaultCleaner applies only the standard substitutions.
var DefaultCleaner = NewCleaner()

// CleanProgramName returns raw with boilerplate prefixes, trailing
// acronyms and document-type labels removed. All-caps names are converted
// to title case. Returns "" if nothing is left.
func (c *Cleaner) CleanProgramName(raw string) string {
	name := CleanText(raw)
	// The standard substitutions only delete text, so this reaches a fixed
	// point. seen stops extra patterns that rewrite without shrinking.
	seen := map[string]bool{name: true}
	for {
		next := c.pass(name)
		if seen[next] {
			name = next
			break
		}
		seen[next] = true
		name = next
	}
	return titleCaseShouting(name)
}

func (c *Cleaner) pass(name string) string {
	for _, re := range c.extra {
		name = CleanText(re.ReplaceAllString(name, " "))
	}
	name = docTypePrefixRe.ReplaceAllString(name, "")
	for _, re := range programPrefixRes {
		name = re.ReplaceAllString(name, "")
	}
	name = qualifierSuffixRe.ReplaceAllString(name, "")
	name = acronymSuffixRe.ReplaceAllString(name, "")
	name = stripDashAcronym(name)
	name = docTypeSuffixRe.ReplaceAllString(name, "")
	name = trailingPunctRe.ReplaceAllString(name, "")
	return CleanText(name)
}

// stripDashAcronym removes a trailing " - PPGX" acronym. In all-caps
// names every word looks like an acronym, so there the token must also
// read like one: a PPG/PG code or a token with few vowels.
func stripDashAcronym(name string) string {
	m := dashAcronymRe.FindStringSubmatch(name)
	if m == nil {
		return name
	}
	rest, token := m[1], m[2]
	if isShouting(rest) && !acronymLike(token) {
		return name
	}
	return rest
}

func acronymLike(token string) bool {
	if strings.HasPrefix(token, "PPG") || strings.HasPrefix(token, "PG") {
		return true
	}
	letters, vowels := 0, 0
	for _, r := range Fold(token) {
		if !unicode.IsLetter(r) {
			continue
		}
		letters++
		if strings.ContainsRune("aeiou", r) {
			vowels++
		}
	}
	return letters > 0 && vowels*3 <= letters
}

// CleanProgramName cleans raw with DefaultCleaner.
func CleanProgramName(raw string) string {
	return DefaultCleaner.CleanProgramName(raw)
}

var connectives = map[string]bool{
	"a": true, "e": true, "o": true, "de": true, "da": true, "do": true, "das": true, "dos": true,
	"em": true, "na": true, "no": true, "para": true, "com": true,
	"and": true, "of": true, "in": true, "the": true, "for": true,
}

// titleCaseShouting converts all-caps names to title case. Single words
// that read like acronyms are left alone.
func titleCaseShouting(name string) string {
	if !isShouting(name) || (!strings.Contains(name, " ") && acronymLike(name)) {
		return name
	}
	// Casers keep state, so each call gets its own.
	caser := cases.Title(language.BrazilianPortuguese)
	words := strings.Fields(caser.String(strings.ToLower(name)))
	for i, w := range words {
		if i > 0 && connectives[strings.ToLower(w)] {
			words[i] = strings.ToLower(w)
		}
	}
	return strings.Join(words, " ")
}

func isShouting(s string) bool {
	letters := 0
	for _, r := range s {
		if !unicode.IsLetter(r) {
			continue
		}
		if unicode.IsLower(r) {
			return false
		}
		letters++
	}
	return letters >= 6
}
