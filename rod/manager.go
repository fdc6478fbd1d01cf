package rod

import (
	"fmt"
	"sync"

	"github.com/fwojciec/repometa"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// DefaultMaxPages is the default number of rendered pages before the
// browser is replaced.
const DefaultMaxPages = 75

// BrowserManager owns the headless Chrome process shared by concurrent
// fetches. Chrome memory grows with every rendered page, so the process is
// replaced after maxPages renders. Replacement waits until no page is
// checked out: harvest workers render in parallel and must never have
// their browser closed underneath them.
//
// BrowserManager is safe for concurrent use.
type BrowserManager struct {
	maxPages int64
	images   bool

	mu       sync.Mutex
	idle     *sync.Cond
	browser  *rod.Browser
	launcher *launcher.Launcher
	rendered int64
	inFlight int
	closed   bool
}

// ManagerOption configures a BrowserManager.
type ManagerOption func(*BrowserManager)

// WithMaxPages sets how many pages are rendered before the browser is
// replaced. Values below 1 disable replacement.
func WithMaxPages(n int64) ManagerOption {
	return func(bm *BrowserManager) { bm.maxPages = n }
}

// WithImages enables image loading. Images are off by default since item
// metadata and bitstream links never depend on them.
func WithImages(enabled bool) ManagerOption {
	return func(bm *BrowserManager) { bm.images = enabled }
}

// NewBrowserManager launches a headless browser. Close must be called when
// the manager is no longer needed.
func NewBrowserManager(opts ...ManagerOption) (*BrowserManager, error) {
	bm := &BrowserManager{maxPages: DefaultMaxPages}
	bm.idle = sync.NewCond(&bm.mu)
	for _, opt := range opts {
		opt(bm)
	}

	browser, lnchr, err := bm.launch()
	if err != nil {
		return nil, err
	}
	bm.browser, bm.launcher = browser, lnchr
	return bm, nil
}

// Acquire checks out the current browser for rendering one page. The
// returned release func must be called once the page is closed; it counts
// the render toward the replacement threshold. Acquire blocks while a
// replacement is pending and other pages are still in flight.
func (bm *BrowserManager) Acquire() (*rod.Browser, func(), error) {
	bm.mu.Lock()
	defer bm.mu.Unlock()

	for !bm.closed && bm.due() && bm.inFlight > 0 {
		bm.idle.Wait()
	}
	if bm.closed {
		return nil, nil, repometa.Errorf(repometa.EINVALID, "browser is closed")
	}
	if bm.due() {
		bm.recycle()
	}

	bm.inFlight++
	var once sync.Once
	release := func() {
		once.Do(func() {
			bm.mu.Lock()
			bm.inFlight--
			bm.rendered++
			bm.mu.Unlock()
			bm.idle.Broadcast()
		})
	}
	return bm.browser, release, nil
}

// Rendered returns the number of pages rendered by the current browser.
func (bm *BrowserManager) Rendered() int64 {
	bm.mu.Lock()
	defer bm.mu.Unlock()
	return bm.rendered
}

// LauncherPID returns the process ID of the browser launcher, or 0 once
// closed.
func (bm *BrowserManager) LauncherPID() int {
	bm.mu.Lock()
	defer bm.mu.Unlock()
	if bm.launcher == nil {
		return 0
	}
	return bm.launcher.PID()
}

// Close shuts the browser down. Close is safe to call multiple times.
func (bm *BrowserManager) Close() error {
	bm.mu.Lock()
	defer bm.mu.Unlock()
	if bm.closed {
		return nil
	}
	bm.closed = true
	bm.idle.Broadcast()
	return bm.shutdown(bm.browser, bm.launcher)
}

// due reports whether the browser has reached the replacement threshold.
// Must be called with mu held.
func (bm *BrowserManager) due() bool {
	return bm.maxPages > 0 && bm.rendered >= bm.maxPages
}

// recycle swaps in a fresh browser. If the launch fails the current browser
// is kept and the counter reset, so the next attempt happens after another
// maxPages renders. Must be called with mu held and nothing in flight.
func (bm *BrowserManager) recycle() {
	bm.rendered = 0
	browser, lnchr, err := bm.launch()
	if err != nil {
		return
	}
	_ = bm.shutdown(bm.browser, bm.launcher)
	bm.browser, bm.launcher = browser, lnchr
}

func (bm *BrowserManager) launch() (*rod.Browser, *launcher.Launcher, error) {
	lnchr := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Leakless(true).
		Headless(true)
	if !bm.images {
		lnchr = lnchr.Set("blink-settings", "imagesEnabled=false")
	}

	u, err := lnchr.Launch()
	if err != nil {
		return nil, nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		lnchr.Kill()
		return nil, nil, fmt.Errorf("connecting to browser: %w", err)
	}
	return browser, lnchr, nil
}

func (bm *BrowserManager) shutdown(browser *rod.Browser, lnchr *launcher.Launcher) error {
	var err error
	if browser != nil {
		err = browser.Close()
	}
	if lnchr != nil {
		lnchr.Kill()
	}
	if bm.browser == browser {
		bm.browser, bm.launcher = nil, nil
	}
	return err
}
