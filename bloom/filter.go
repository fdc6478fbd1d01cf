// Package bloom provides item URL deduplication for harvest runs using
// Bloom filters.
package bloom

import (
	"net/url"
	"strings"
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
)

// Filter records item URLs already scheduled in a harvest run. URLs are
// normalized before hashing so that fragment, scheme and trailing slash
// variants of the same item collide. Filter is safe for concurrent use.
type Filter struct {
	mu sync.Mutex
	f  *bloom.BloomFilter
}

// NewFilter creates a new Bloom filter sized for n expected items
// with the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Add adds a URL to the filter.
func (f *Filter) Add(rawURL string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.f.AddString(Normalize(rawURL))
}

// Test returns true if the URL might be in the filter.
// False positives are possible; false negatives are not.
func (f *Filter) Test(rawURL string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.f.TestString(Normalize(rawURL))
}

// Seen adds the URL and reports whether it was (probably) present before.
func (f *Filter) Seen(rawURL string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.f.TestAndAddString(Normalize(rawURL))
}

// EstimatedCount returns the approximate number of items in the filter.
func (f *Filter) EstimatedCount() uint {
	f.mu.Lock()
	defer f.mu.Unlock()
	return uint(f.f.ApproximatedSize())
}

// viewParams select alternate renderings of the same item page.
var viewParams = []string{"show", "mode", "locale", "locale-attribute"}

// Normalize returns the dedup key for rawURL: host lowercased, scheme and
// fragment dropped, trailing slash trimmed. Item view variants collapse to
// the item: the full-record view (?show=full, /items/<id>/full) and
// locale switches. Remaining query parameters are kept in sorted order.
// Unparseable input is returned trimmed.
func Normalize(rawURL string) string {
	s := strings.TrimSpace(rawURL)
	u, err := url.Parse(s)
	if err != nil || u.Host == "" {
		return s
	}

	path := strings.TrimSuffix(u.EscapedPath(), "/")
	if strings.Contains(path, "/items/") || strings.Contains(path, "/entities/") {
		path = strings.TrimSuffix(path, "/full")
	}

	q := u.Query()
	for _, p := range viewParams {
		q.Del(p)
	}

	key := strings.ToLower(u.Host) + path
	if enc := q.Encode(); enc != "" {
		key += "?" + enc
	}
	return key
}
