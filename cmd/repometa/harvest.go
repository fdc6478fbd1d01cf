package main

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/fwojciec/repometa"
	"github.com/fwojciec/repometa/batch"
	"github.com/fwojciec/repometa/goquery"
)

// Run executes the harvest command.
func (c *HarvestCmd) Run(deps *Dependencies) error {
	filter, err := c.urlFilter()
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	urls, err := c.discover(deps, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	if c.Preview {
		for _, u := range urls {
			fmt.Fprintln(deps.Stdout, u)
		}
		return nil
	}

	if len(urls) == 0 {
		fmt.Fprintln(deps.Stdout, "No item URLs to harvest.")
		return nil
	}

	if !c.Browser {
		c.probeRendering(deps, urls[0])
	}

	progress := func(event batch.ProgressEvent) {
		switch event.Type {
		case batch.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "Harvesting %d URLs\n", event.Total)
		case batch.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  fail %s: %v\n", batch.ShortURL(event.URL, 80), event.Error)
		case batch.ProgressCompleted:
			if len(event.Missing) > 0 {
				fmt.Fprintf(deps.Stdout, "  [%d/%d] %s (%s, missing %s)\n", event.Completed, event.Total,
					batch.ShortURL(event.URL, 60), event.Strategy, strings.Join(event.Missing, ", "))
			} else {
				fmt.Fprintf(deps.Stdout, "  [%d/%d] %s (%s)\n", event.Completed, event.Total,
					batch.ShortURL(event.URL, 60), event.Strategy)
			}
		}
	}

	result, err := deps.Harvester.Harvest(deps.Ctx, urls, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error harvesting: %v\n", err)
		return err
	}

	fmt.Fprintf(deps.Stdout, "Saved %d records (%d incomplete), %d failed, %d skipped, %s downloaded\n",
		result.Saved, result.Incomplete, result.Failed, result.Skipped, batch.FormatSize(result.Bytes))
	return nil
}

// probeRendering fetches one item page over plain HTTP and warns when it
// is a client-rendered shell that only a browser can extract.
func (c *HarvestCmd) probeRendering(deps *Dependencies, url string) {
	if deps.Discoverer == nil || deps.Discoverer.Fetcher == nil {
		return
	}
	body, err := deps.Discoverer.Fetcher.Fetch(deps.Ctx, url)
	if err != nil {
		return
	}
	if goquery.NewDetector().NeedsRendering(body) {
		fmt.Fprintf(deps.Stderr, "warning: %s is rendered client-side; rerun with --browser\n", batch.ShortURL(url, 80))
	}
}

// discover collects item URLs from arguments, sitemap and listing pages,
// in that order, keeping those that pass filter.
func (c *HarvestCmd) discover(deps *Dependencies, filter *repometa.URLFilter) ([]string, error) {
	if len(c.URLs) == 0 && c.Sitemap == "" && len(c.Listing) == 0 {
		return nil, repometa.Errorf(repometa.EINVALID, "nothing to harvest: pass item URLs, --sitemap or --listing")
	}

	candidates := append([]string(nil), c.URLs...)

	if c.Sitemap != "" {
		found, err := deps.Discoverer.FromSitemap(deps.Ctx, c.Sitemap, filter)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, found...)
	}

	if len(c.Listing) > 0 {
		found, err := deps.Discoverer.FromListings(deps.Ctx, c.Listing, filter)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, found...)
	}

	var urls []string
	for _, u := range candidates {
		if filter.Match(u) {
			urls = append(urls, u)
		}
	}
	return urls, nil
}

// urlFilter compiles the include and exclude patterns.
func (c *HarvestCmd) urlFilter() (*repometa.URLFilter, error) {
	if len(c.Filter) == 0 && len(c.Exclude) == 0 {
		return nil, nil
	}
	filter := &repometa.URLFilter{}
	for _, pattern := range c.Filter {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid filter pattern %q: %w", pattern, err)
		}
		filter.Include = append(filter.Include, re)
	}
	for _, pattern := range c.Exclude {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}
		filter.Exclude = append(filter.Exclude, re)
	}
	return filter, nil
}
