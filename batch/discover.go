package batch

import (
	"context"
	"fmt"
	"time"

	"github.com/fwojciec/repometa"
)

// Discoverer collects item URLs to harvest, either from a repository's
// sitemaps or from listing pages such as browse and search results.
type Discoverer struct {
	Sitemaps    repometa.SitemapService
	Fetcher     repometa.Fetcher
	Links       repometa.ItemLinkFunc
	RetryDelays []time.Duration
}

// FromSitemap returns item URLs listed in the sitemaps of baseURL.
func (d *Discoverer) FromSitemap(ctx context.Context, baseURL string, filter *repometa.URLFilter) ([]string, error) {
	urls, err := d.Sitemaps.DiscoverURLs(ctx, baseURL, filter)
	if err != nil {
		return nil, fmt.Errorf("sitemap discovery: %w", err)
	}
	return urls, nil
}

// FromListings fetches each listing page and returns the item URLs linked
// from them, deduplicated in discovery order. A listing that cannot be
// fetched or parsed fails the whole discovery.
func (d *Discoverer) FromListings(ctx context.Context, listingURLs []string, filter *repometa.URLFilter) ([]string, error) {
	delays := d.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}

	seen := make(map[string]bool)
	var urls []string
	for _, listing := range listingURLs {
		body, err := FetchWithRetry(ctx, listing, d.Fetcher.Fetch, nil, delays)
		if err != nil {
			return nil, fmt.Errorf("fetch listing %s: %w", listing, err)
		}
		links, err := d.Links(body, listing, filter)
		if err != nil {
			return nil, fmt.Errorf("listing %s: %w", listing, err)
		}
		for _, u := range links {
			if !seen[u] {
				seen[u] = true
				urls = append(urls, u)
			}
		}
	}
	return urls, nil
}
