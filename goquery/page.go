package goquery

import (
	"log/slog"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/repometa"
)

// Page is a parsed repository page handed to the extraction steps.
type Page struct {
	Doc  *goquery.Document
	Body string

	// Base is the URL relative links resolve against. It is the source URL,
	// or the document's <base href> when present. May be nil.
	Base *url.URL

	logger *slog.Logger

	state       *State
	stateErr    error
	stateParsed bool

	attempts []attempt
}

// attempt is one heuristic tried while extracting a field.
type attempt struct {
	step  string
	value string
}

// NewPage parses body fetched from sourceURL.
// Returns EINVALID if the body is empty or cannot be parsed.
func NewPage(body string, sourceURL string) (*Page, error) {
	if strings.TrimSpace(body) == "" {
		return nil, repometa.Errorf(repometa.EINVALID, "empty document")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil, repometa.Errorf(repometa.EINVALID, "failed to parse HTML: %v", err)
	}

	p := &Page{Doc: doc, Body: body, logger: slog.New(slog.DiscardHandler)}
	if u, err := url.Parse(strings.TrimSpace(sourceURL)); err == nil && u.IsAbs() {
		p.Base = u
	}
	if href, ok := doc.Find("base[href]").First().Attr("href"); ok {
		if ref, err := url.Parse(strings.TrimSpace(href)); err == nil {
			if p.Base != nil {
				p.Base = p.Base.ResolveReference(ref)
			} else if ref.IsAbs() {
				p.Base = ref
			}
		}
	}
	return p, nil
}

// State returns the parsed application-state blob embedded in the page.
// The blob is parsed once per page. Returns false when the page has no
// state or the state is malformed; malformed state is logged at debug
// level.
func (p *Page) State() (*State, bool) {
	if !p.stateParsed {
		p.stateParsed = true
		p.state, p.stateErr = ParseState(p)
		if p.stateErr != nil && repometa.ErrorCode(p.stateErr) != repometa.ENOTFOUND {
			p.logger.Debug("application state unusable", "err", repometa.ErrorMessage(p.stateErr))
		}
	}
	return p.state, p.stateErr == nil
}

// try records that the named heuristic ran and produced v, and returns v.
func (p *Page) try(step, v string) string {
	p.attempts = append(p.attempts, attempt{step: step, value: v})
	return v
}

// stateFailure records why application state could not be consulted.
func (p *Page) stateFailure() {
	if p.stateErr != nil && repometa.ErrorCode(p.stateErr) == repometa.EINVALID {
		p.try("malformed state", "")
	} else {
		p.try("state", "")
	}
}

// trace returns the heuristic that produced result, if any was recorded,
// and the distinct heuristics tried in order. The record is cleared.
func (p *Page) trace(result string) (via string, tried []string) {
	want := CleanText(result)
	seen := make(map[string]bool)
	for _, a := range p.attempts {
		if via == "" && want != "" && CleanText(a.value) == want {
			via = a.step
		}
		if !seen[a.step] {
			seen[a.step] = true
			tried = append(tried, a.step)
		}
	}
	p.attempts = nil
	return via, tried
}

// Resolve turns href into an absolute URL. Returns "" for empty,
// unparseable or non-HTTP links, and for relative links on a page
// without a base URL.
func (p *Page) Resolve(href string) string {
	href = strings.TrimSpace(href)
	if href == "" || isNonHTTPLink(href) {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if ref.IsAbs() {
		if ref.Scheme != "http" && ref.Scheme != "https" {
			return ""
		}
		return ref.String()
	}
	if p.Base == nil {
		return ""
	}
	return p.Base.ResolveReference(ref).String()
}

// Meta returns the content of the first non-empty meta tag whose name or
// property equals one of names, compared case-insensitively.
func (p *Page) Meta(names ...string) string {
	for _, name := range names {
		var found string
		p.Doc.Find("meta").EachWithBreak(func(_ int, s *goquery.Selection) bool {
			if !strings.EqualFold(metaName(s), name) {
				return true
			}
			if content := CleanText(s.AttrOr("content", "")); content != "" {
				found = content
				return false
			}
			return true
		})
		if found != "" {
			return found
		}
	}
	return ""
}

// MetaTag is a name/content pair from a meta element.
type MetaTag struct {
	Name    string
	Content string
}

// MetaTags returns all named meta tags in document order.
func (p *Page) MetaTags() []MetaTag {
	var tags []MetaTag
	p.Doc.Find("meta").Each(func(_ int, s *goquery.Selection) {
		name := metaName(s)
		if name == "" {
			return
		}
		tags = append(tags, MetaTag{Name: name, Content: CleanText(s.AttrOr("content", ""))})
	})
	return tags
}

// Title returns the document title.
func (p *Page) Title() string {
	return CleanText(p.Doc.Find("title").First().Text())
}

// ItemTitle returns the title of the catalogued item from citation or
// Dublin Core metadata.
func (p *Page) ItemTitle() string {
	return p.Meta("citation_title", "DC.title", "dc.title")
}

func metaName(s *goquery.Selection) string {
	if name, ok := s.Attr("name"); ok {
		return strings.TrimSpace(name)
	}
	if prop, ok := s.Attr("property"); ok {
		return strings.TrimSpace(prop)
	}
	return ""
}

// isNonHTTPLink checks if a href is a non-HTTP link that should be skipped.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:") ||
		strings.HasPrefix(href, "#")
}
