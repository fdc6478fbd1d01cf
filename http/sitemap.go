package http

import (
	"bufio"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/repometa"
)

var _ repometa.SitemapService = (*SitemapService)(nil)

// SitemapFallbackPaths are probed in order when robots.txt declares no
// sitemap. SPA repositories publish /sitemap_index.xml, classic ones
// /sitemap.
var SitemapFallbackPaths = []string{"/sitemap_index.xml", "/sitemap.xml", "/sitemap"}

// maxSitemapDepth bounds nesting of sitemap indexes.
const maxSitemapDepth = 4

// SitemapService discovers item pages from repository sitemaps.
type SitemapService struct {
	client    *http.Client
	userAgent string
}

// NewSitemapService creates a SitemapService. A nil client means
// http.DefaultClient.
func NewSitemapService(client *http.Client) *SitemapService {
	if client == nil {
		client = http.DefaultClient
	}
	return &SitemapService{client: client, userAgent: DefaultUserAgent}
}

// SetUserAgent sets the User-Agent header sent with sitemap requests.
func (s *SitemapService) SetUserAgent(ua string) {
	s.userAgent = ua
}

// DiscoverURLs returns the item pages listed in the repository's sitemaps,
// in sitemap order without duplicates. Only URLs accepted by
// repometa.IsItemURL and filter are kept. A baseURL with a path, such as
// https://repo.example.br/handle/123/, restricts results to that
// community's items.
//
// Child sitemaps that cannot be fetched or parsed are skipped; large
// repositories routinely serve a few broken shards. Discovery fails only
// when none of the top-level sitemaps can be read. No sitemap at all yields
// an empty slice.
func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *repometa.URLFilter) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	base, err := url.Parse(baseURL)
	if err != nil || base.Host == "" {
		return nil, repometa.Errorf(repometa.EINVALID, "invalid repository URL %q", baseURL)
	}
	prefix := strings.TrimSuffix(base.Path, "/")
	root := &url.URL{Scheme: base.Scheme, Host: base.Host}

	sitemaps, err := s.locateSitemaps(ctx, root)
	if err != nil {
		return nil, err
	}

	w := &sitemapWalk{
		svc:     s,
		visited: make(map[string]bool),
		found:   make(map[string]bool),
		items:   []string{},
		keep: func(u string) bool {
			return repometa.IsItemURL(u) && underPrefix(u, prefix) && filter.Match(u)
		},
	}

	var firstErr error
	read := 0
	for _, sm := range sitemaps {
		if err := w.visit(ctx, sm, 0); err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		read++
	}
	if read == 0 && firstErr != nil {
		return nil, firstErr
	}
	return w.items, nil
}

// underPrefix reports whether rawURL's path lies under prefix, respecting
// segment boundaries: /handle/12 covers /handle/12/5 but not /handle/123/5.
func underPrefix(rawURL, prefix string) bool {
	if prefix == "" {
		return true
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return u.Path == prefix || strings.HasPrefix(u.Path, prefix+"/")
}

// sitemapWalk holds the state of one discovery run.
type sitemapWalk struct {
	svc     *SitemapService
	keep    func(string) bool
	visited map[string]bool
	found   map[string]bool
	items   []string
}

// visit reads one sitemap document, recursing into indexes. Errors from
// nested sitemaps are swallowed; only the error of this document is
// returned.
func (w *sitemapWalk) visit(ctx context.Context, sitemapURL string, depth int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if w.visited[sitemapURL] || depth > maxSitemapDepth {
		return nil
	}
	w.visited[sitemapURL] = true

	root, err := w.svc.readSitemap(ctx, sitemapURL)
	if err != nil {
		return err
	}

	switch root.Tag {
	case "sitemapindex":
		for _, loc := range locs(root, "sitemap") {
			if err := w.visit(ctx, loc, depth+1); err != nil && ctx.Err() != nil {
				return ctx.Err()
			}
		}
	case "urlset":
		for _, loc := range locs(root, "url") {
			if !w.found[loc] && w.keep(loc) {
				w.found[loc] = true
				w.items = append(w.items, loc)
			}
		}
	default:
		return fmt.Errorf("%s: unexpected root element <%s>", sitemapURL, root.Tag)
	}
	return nil
}

// locs returns the trimmed <loc> values of the named children of root.
func locs(root *etree.Element, child string) []string {
	var out []string
	for _, el := range root.SelectElements(child) {
		if loc := el.SelectElement("loc"); loc != nil {
			if v := strings.TrimSpace(loc.Text()); v != "" {
				out = append(out, v)
			}
		}
	}
	return out
}

// locateSitemaps returns the sitemaps declared in robots.txt, or the first
// fallback path that answers a HEAD request.
func (s *SitemapService) locateSitemaps(ctx context.Context, root *url.URL) ([]string, error) {
	robots := root.ResolveReference(&url.URL{Path: "/robots.txt"}).String()
	if declared, err := s.robotsSitemaps(ctx, robots); err == nil && len(declared) > 0 {
		return declared, nil
	}

	for _, path := range SitemapFallbackPaths {
		candidate := root.ResolveReference(&url.URL{Path: path}).String()
		ok, err := s.exists(ctx, candidate)
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if err == nil && ok {
			return []string{candidate}, nil
		}
	}
	return nil, nil
}

// robotsSitemaps reads Sitemap: directives from robots.txt.
func (s *SitemapService) robotsSitemaps(ctx context.Context, robotsURL string) ([]string, error) {
	body, err := s.get(ctx, robotsURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	var out []string
	scanner := bufio.NewScanner(body)
	for scanner.Scan() {
		name, value, ok := strings.Cut(scanner.Text(), ":")
		if !ok || !strings.EqualFold(strings.TrimSpace(name), "sitemap") {
			continue
		}
		if v := strings.TrimSpace(value); v != "" {
			out = append(out, v)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading robots.txt: %w", err)
	}
	return out, nil
}

// readSitemap fetches and parses a sitemap document. Gzipped sitemaps
// (.xml.gz) are decompressed.
func (s *SitemapService) readSitemap(ctx context.Context, sitemapURL string) (*etree.Element, error) {
	body, err := s.get(ctx, sitemapURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	var r io.Reader = body
	if strings.HasSuffix(strings.ToLower(pathOf(sitemapURL)), ".gz") {
		gz, err := gzip.NewReader(body)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", sitemapURL, err)
		}
		defer gz.Close()
		r = gz
	}

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("parsing sitemap %s: %w", sitemapURL, err)
	}
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("empty sitemap %s", sitemapURL)
	}
	return root, nil
}

func pathOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	return u.Path
}

func (s *SitemapService) get(ctx context.Context, target string) (io.ReadCloser, error) {
	resp, err := s.do(ctx, http.MethodGet, target)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, target)
	}
	return resp.Body, nil
}

func (s *SitemapService) exists(ctx context.Context, target string) (bool, error) {
	resp, err := s.do(ctx, http.MethodHead, target)
	if err != nil {
		return false, err
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK, nil
}

func (s *SitemapService) do(ctx context.Context, method, target string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, target, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)
	return s.client.Do(req)
}
