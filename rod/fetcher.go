// Package rod provides a browser-backed repometa.Fetcher for repositories
// that render item pages client-side.
package rod

import (
	"context"
	"net/url"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fwojciec/repometa"
	"github.com/go-rod/rod/lib/proto"
	"golang.org/x/time/rate"
)

// Defaults used by NewFetcher.
const (
	DefaultFetchTimeout = 30 * time.Second
	DefaultDelay        = time.Second
)

// readySelector matches the root element or embedded state of a rendered
// SPA repository page.
const readySelector = "ds-app, ds-root, script#dspace-angular-state, script#serverApp-state"

// Ensure Fetcher implements repometa.Fetcher at compile time.
var _ repometa.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML using Chrome browser automation.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	manager   *BrowserManager
	timeout   time.Duration
	delay     time.Duration
	userAgent string
	maxPages  int64
	closed    atomic.Bool

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithFetchTimeout sets the per-page timeout covering navigation and
// rendering. Defaults to DefaultFetchTimeout.
func WithFetchTimeout(d time.Duration) Option {
	return func(f *Fetcher) { f.timeout = d }
}

// WithDelay sets the minimum delay between requests to the same host.
func WithDelay(d time.Duration) Option {
	return func(f *Fetcher) { f.delay = d }
}

// WithUserAgent overrides the browser user agent.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) { f.userAgent = ua }
}

// WithRecycleAfter sets how many pages are rendered before the browser is
// recycled. Defaults to DefaultMaxPages.
func WithRecycleAfter(n int64) Option {
	return func(f *Fetcher) { f.maxPages = n }
}

// NewFetcher creates a new Fetcher that launches a headless Chrome browser.
// Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{
		timeout:  DefaultFetchTimeout,
		delay:    DefaultDelay,
		maxPages: DefaultMaxPages,
		limiters: make(map[string]*rate.Limiter),
	}
	for _, opt := range opts {
		opt(f)
	}

	manager, err := NewBrowserManager(WithMaxPages(f.maxPages))
	if err != nil {
		return nil, err
	}
	f.manager = manager

	return f, nil
}

// Fetch navigates to rawURL and returns the rendered HTML. For SPA pages
// it waits until the application root or its serialized state appears,
// falling back to the loaded document when neither shows up.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	if f.closed.Load() {
		return "", repometa.Errorf(repometa.EINVALID, "fetcher is closed")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return "", repometa.Errorf(repometa.EINVALID, "invalid URL %q", rawURL)
	}
	if err := f.wait(ctx, u.Host); err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	browser, release, err := f.manager.Acquire()
	if err != nil {
		return "", err
	}
	defer release()

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", err
	}
	defer page.Close()

	page = page.Context(ctx)

	if f.userAgent != "" {
		if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: f.userAgent}); err != nil {
			return "", err
		}
	}

	if err := page.Navigate(rawURL); err != nil {
		return "", err
	}
	if err := page.WaitLoad(); err != nil {
		return "", err
	}

	// Client-rendered pages fill the state script after load; a missing
	// marker is not an error because classic pages never have one.
	if has, _, _ := page.Has(readySelector); !has {
		_ = page.Timeout(f.timeout / 3).WaitElementsMoreThan(readySelector, 0)
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}

	return page.HTML()
}

func (f *Fetcher) wait(ctx context.Context, host string) error {
	if f.delay <= 0 {
		return nil
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

// LauncherPID returns the process ID of the current browser launcher.
func (f *Fetcher) LauncherPID() int {
	return f.manager.LauncherPID()
}

// Close releases browser resources. Close is safe to call multiple times.
func (f *Fetcher) Close() error {
	if !f.closed.CompareAndSwap(false, true) {
		return nil
	}
	return f.manager.Close()
}
