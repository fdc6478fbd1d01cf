// Package http provides an HTTP-based implementation of repometa.Fetcher
// and repository sitemap discovery.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/fwojciec/repometa"
	"golang.org/x/net/html/charset"
	"golang.org/x/time/rate"
)

// Defaults used by NewFetcher.
const (
	DefaultFetchTimeout = 30 * time.Second
	DefaultDelay        = time.Second
	DefaultUserAgent    = "repometa/1.0 (+https://github.com/fwojciec/repometa)"
)

// MaxBodySize caps how much of a page is read. Item pages with embedded
// application state stay well below it.
const MaxBodySize = 16 << 20

// Ensure Fetcher implements repometa.Fetcher at compile time.
var _ repometa.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves repository pages using plain HTTP requests. Requests to
// the same host are spaced by at least the configured delay.
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	delay     time.Duration
	userAgent string

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (30s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithDelay sets the minimum delay between requests to the same host.
// Zero disables the delay.
func WithDelay(d time.Duration) Option {
	return func(f *Fetcher) {
		f.delay = d
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:   DefaultFetchTimeout,
		delay:     DefaultDelay,
		userAgent: DefaultUserAgent,
		limiters:  make(map[string]*rate.Limiter),
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves the page body at rawURL.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return "", repometa.Errorf(repometa.EINVALID, "invalid URL %q", rawURL)
	}
	if err := f.wait(ctx, u.Host); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound, http.StatusGone:
		// Withdrawn or deleted items; retrying will not bring them back.
		return "", repometa.Errorf(repometa.ENOTFOUND, "HTTP %d for %s", resp.StatusCode, rawURL)
	default:
		return "", fmt.Errorf("HTTP %d for %s", resp.StatusCode, rawURL)
	}

	// Older repositories still serve ISO-8859-1; extraction expects UTF-8.
	r, err := charset.NewReader(io.LimitReader(resp.Body, MaxBodySize), resp.Header.Get("Content-Type"))
	if err != nil {
		return "", fmt.Errorf("decoding %s: %w", rawURL, err)
	}
	body, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

func (f *Fetcher) wait(ctx context.Context, host string) error {
	if f.delay <= 0 {
		return ctx.Err()
	}

	f.mu.Lock()
	limiter, ok := f.limiters[host]
	if !ok {
		limiter = rate.NewLimiter(rate.Every(f.delay), 1)
		f.limiters[host] = limiter
	}
	f.mu.Unlock()

	return limiter.Wait(ctx)
}

// Close is a no-op.
func (f *Fetcher) Close() error {
	return nil
}
