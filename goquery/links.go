package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/repometa"
)

// ItemLinks extracts item page links from a listing page such as a browse,
// search or recent-submissions page. Links are resolved against baseURL,
// deduplicated with fragments stripped, and returned in document order.
// Links to other hosts and non-item pages are skipped.
func ItemLinks(body string, baseURL string, filter *repometa.URLFilter) ([]string, error) {
	base, err := url.Parse(baseURL)
	if err != nil || !base.IsAbs() {
		return nil, repometa.Errorf(repometa.EINVALID, "invalid base URL: %q", baseURL)
	}
	self := *base
	self.Fragment = ""

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil, repometa.Errorf(repometa.EINVALID, "failed to parse HTML: %v", err)
	}

	seen := map[string]bool{self.String(): true}
	links := []string{}
	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href := strings.TrimSpace(a.AttrOr("href", ""))
		if href == "" || isNonHTTPLink(href) {
			return
		}
		ref, err := url.Parse(href)
		if err != nil {
			return
		}
		u := base.ResolveReference(ref)
		u.Fragment = ""
		// Subdomains count as other hosts.
		if !strings.EqualFold(u.Host, base.Host) {
			return
		}

		link := u.String()
		if seen[link] || !isItemLink(link) || !filter.Match(link) {
			return
		}
		seen[link] = true
		links = append(links, link)
	})
	return links, nil
}

// isItemLink reports whether link is an item page rather than one of its
// files.
func isItemLink(link string) bool {
	if !repometa.IsItemURL(link) {
		return false
	}
	path := linkPath(link)
	for _, marker := range []string{"/bitstream/", "/bitstreams/"} {
		if strings.Contains(path, marker) {
			return false
		}
	}
	return !strings.HasSuffix(strings.ToLower(path), ".pdf")
}
