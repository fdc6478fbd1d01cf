package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/repometa"
)

var _ repometa.PlatformDetector = (*Detector)(nil)

// minDublinCore is the number of Dublin Core or citation meta tags above
// which an otherwise unmarked page is treated as a classic catalog page.
const minDublinCore = 5

// Detector identifies the repository platform family from page content.
// It checks for application-root elements, embedded state, catalog page
// structure and the generator meta tag.
type Detector struct{}

// NewDetector creates a new Detector.
func NewDetector() *Detector {
	return &Detector{}
}

// Detect analyzes the page body and returns the identified family.
// Returns FamilyUnknown if the family cannot be determined.
func (d *Detector) Detect(body string) repometa.Family {
	if strings.TrimSpace(body) == "" {
		return repometa.FamilyUnknown
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return repometa.FamilyUnknown
	}

	// Generator tag first - most reliable when present
	if family := d.detectFromMetaGenerator(doc); family != repometa.FamilyUnknown {
		return family
	}

	// Single-page application markers
	// ds-app is the root component of the Angular front end
	if d.hasSelector(doc, "ds-app") ||
		d.hasSelector(doc, "ds-root") ||
		d.hasSelector(doc, "script#dspace-angular-state") ||
		strings.Contains(body, "&q;cache/object&q;") {
		return repometa.FamilySPA
	}

	// Classic catalog markers (JSPUI and XMLUI themes)
	if d.hasSelector(doc, "#ds-body") ||
		d.hasSelector(doc, "#ds-trail") ||
		d.hasSelector(doc, "table.itemDisplayTable") ||
		d.hasSelector(doc, "td.metadataFieldLabel") ||
		d.hasSelector(doc, ".ds-referenceSet-list") ||
		d.hasSelector(doc, ".item-summary-view-metadata") {
		return repometa.FamilyClassic
	}

	if countDublinCore(doc) >= minDublinCore {
		return repometa.FamilyClassic
	}

	return repometa.FamilyUnknown
}

// detectFromMetaGenerator checks the meta generator tag. Releases from 7
// onwards ship the single-page front end.
func (d *Detector) detectFromMetaGenerator(doc *goquery.Document) repometa.Family {
	generator := strings.ToLower(doc.Find("meta[name='generator']").First().AttrOr("content", ""))
	if !strings.Contains(generator, "dspace") {
		return repometa.FamilyUnknown
	}
	for _, v := range []string{"dspace 7", "dspace 8", "dspace 9"} {
		if strings.Contains(generator, v) {
			return repometa.FamilySPA
		}
	}
	return repometa.FamilyClassic
}

// hasSelector returns true if the document contains at least one element
// matching the selector.
func (d *Detector) hasSelector(doc *goquery.Document, selector string) bool {
	return doc.Find(selector).Length() > 0
}

func countDublinCore(doc *goquery.Document) int {
	n := 0
	doc.Find("meta").Each(func(_ int, s *goquery.Selection) {
		name := strings.ToLower(metaName(s))
		if strings.HasPrefix(name, "dc.") || strings.HasPrefix(name, "dcterms.") || strings.HasPrefix(name, "citation_") {
			n++
		}
	})
	return n
}

// NeedsRendering reports whether body is a single-page application shell
// that carries neither embedded state nor citation metadata. Item fields on
// such pages exist only after scripts run, so a plain HTTP fetch yields
// nothing to extract.
func (d *Detector) NeedsRendering(body string) bool {
	if d.Detect(body) != repometa.FamilySPA {
		return false
	}
	p, err := NewPage(body, "")
	if err != nil {
		return false
	}
	if _, ok := p.State(); ok {
		return false
	}
	return p.Meta("citation_title", "citation_pdf_url", "DC.title") == ""
}
