package repometa

import "context"

// Fetcher retrieves repository pages.
// Implementations apply a fixed timeout, user agent and a delay between
// requests; failures are returned to the caller and never retried here.
type Fetcher interface {
	// Fetch returns the page body at url.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (body string, err error)

	// Close releases resources held by the fetcher.
	Close() error
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}
