package repometa

import (
	"net/url"
	"strings"
)

// Family identifies a repository platform family.
type Family string

// Supported platform families.
const (
	FamilyUnknown Family = ""
	FamilyClassic Family = "classic" // server-rendered catalog pages (JSPUI, XMLUI)
	FamilySPA     Family = "spa"     // single-page application with embedded state
	FamilyGeneric Family = "generic"
)

// ParseFamily converts a configuration value into a Family.
// Common platform aliases are accepted.
func ParseFamily(s string) (Family, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "classic", "jspui", "xmlui", "dspace6", "dspace":
		return FamilyClassic, nil
	case "spa", "angular", "dspace7", "dspace8":
		return FamilySPA, nil
	case "generic":
		return FamilyGeneric, nil
	}
	return FamilyUnknown, Errorf(EINVALID, "unknown platform family %q", s)
}

// ProgressFunc receives human-readable progress messages.
// Calls are fire-and-forget; implementations must not block.
type ProgressFunc func(message string)

// Extractor turns a downloaded repository page into a Record.
type Extractor interface {
	// Extract processes the page body fetched from sourceURL.
	// It never fails: fields that cannot be extracted hold Sentinel.
	Extract(body string, sourceURL string) Record

	// Name returns the strategy identifier (e.g., "classic", "spa:ufrgs").
	Name() string
}

// PlatformDetector identifies the platform family from page content.
type PlatformDetector interface {
	// Detect returns FamilyUnknown if the family cannot be determined.
	Detect(body string) Family
}

// Resolver selects the extraction strategy for a source.
type Resolver interface {
	// Resolve returns a strategy for sourceURL. The body is optional and
	// used for content sniffing when the URL alone is not conclusive.
	// Every call returns a strategy that is not shared with other callers.
	Resolve(sourceURL string, body string) Extractor
}

// SiteEntry is one row of the declarative site table. It binds repositories
// whose URL contains URL to a platform family and a display identity,
// without requiring any custom extraction logic.
type SiteEntry struct {
	URL     string `json:"url" yaml:"url"`
	Family  Family `json:"family" yaml:"family"`
	Acronym string `json:"acronym" yaml:"acronym"`
	Name    string `json:"name" yaml:"name"`
}

// Validate returns an error if the entry contains invalid fields.
func (e *SiteEntry) Validate() error {
	if strings.TrimSpace(e.URL) == "" {
		return Errorf(EINVALID, "site entry url required")
	}
	if e.Family != FamilyClassic && e.Family != FamilySPA && e.Family != FamilyGeneric {
		return Errorf(EINVALID, "site entry %q: unknown family %q", e.URL, e.Family)
	}
	return nil
}

// Matches reports whether sourceURL contains the entry's URL substring.
func (e *SiteEntry) Matches(sourceURL string) bool {
	return URLContains(sourceURL, e.URL)
}

// Identity returns the display identity bound by the entry.
func (e *SiteEntry) Identity() Identity {
	return Identity{Acronym: e.Acronym, Name: e.Name}
}

// URLContains reports whether sourceURL contains fragment, ignoring case
// and the URL scheme of both. An empty fragment never matches.
func URLContains(sourceURL, fragment string) bool {
	needle := stripScheme(strings.ToLower(strings.TrimSpace(fragment)))
	if needle == "" {
		return false
	}
	return strings.Contains(stripScheme(strings.ToLower(sourceURL)), needle)
}

func stripScheme(s string) string {
	if i := strings.Index(s, "://"); i != -1 {
		return s[i+3:]
	}
	return s
}

// Host returns the lowercased host of rawURL, or "" if it cannot be parsed.
func Host(rawURL string) string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Hostname())
}
