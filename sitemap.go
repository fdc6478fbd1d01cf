package repometa

import (
	"context"
	"regexp"
	"strings"
)

// SitemapService discovers item URLs from repository sitemaps.
type SitemapService interface {
	// DiscoverURLs finds item page URLs from a repository's sitemaps.
	// It first checks robots.txt for sitemap directives, then falls back
	// to the platform's well-known sitemap paths. Sitemap indexes are
	// resolved recursively.
	//
	// If filter is nil, all item URLs are returned.
	DiscoverURLs(ctx context.Context, baseURL string, filter *URLFilter) ([]string, error)
}

// ItemPathMarkers are path fragments that identify item pages, as opposed
// to collection, browse or search pages.
var ItemPathMarkers = []string{"/handle/", "/items/", "/entities/"}

// IsItemURL reports whether rawURL looks like a repository item page.
func IsItemURL(rawURL string) bool {
	lower := strings.ToLower(rawURL)
	for _, m := range ItemPathMarkers {
		if strings.Contains(lower, m) {
			return true
		}
	}
	return false
}

// URLFilter specifies patterns for including/excluding URLs.
type URLFilter struct {
	// Include patterns - if set, only URLs matching at least one pattern are included.
	Include []*regexp.Regexp

	// Exclude patterns - URLs matching any pattern are excluded.
	Exclude []*regexp.Regexp
}

// Match returns true if the URL passes the filter.
// If the filter is nil, all URLs pass.
func (f *URLFilter) Match(url string) bool {
	if f == nil {
		return true
	}
	if len(f.Include) > 0 && !anyMatch(f.Include, url) {
		return false
	}
	return !anyMatch(f.Exclude, url)
}

func anyMatch(patterns []*regexp.Regexp, s string) bool {
	for _, re := range patterns {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}

// ItemLinkFunc extracts item page links from a listing page body fetched
// from baseURL.
type ItemLinkFunc func(body, baseURL string, filter *URLFilter) ([]string, error)
