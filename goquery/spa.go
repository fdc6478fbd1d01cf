package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/repometa"
	"github.com/tidwall/gjson"
)

// SPAProgramKeys are the metadata keys that carry the program in
// application state, in order of preference. Deployments differ in which
// key they populate.
var SPAProgramKeys = []string{
	"dc.contributor.program",
	"dc.publisher.program",
	"dc.description.program",
	"thesis.degree.program",
	"dc.subject.program",
	"local.program",
	"dc.publisher.department",
}

// programIndicators mark collection and community names that denote a
// graduate program.
var programIndicators = []string{
	"graduate program",
	"masters",
	"doctorate",
	"programa de pós-graduação",
	"programa de pós graduação",
	"pós-graduação",
	"mestrado",
	"doutorado",
}

// NewSPA returns the strategy for single-page-application repositories
// that embed their client state in the page.
func NewSPA(opts ...Option) *Strategy {
	base := []Option{
		WithName(string(repometa.FamilySPA)),
		WithProgramFinder(ProgramFunc(SPAProgram)),
		WithPDFFinder(PDFFunc(SPAPDF)),
	}
	return NewStrategy(append(base, opts...)...)
}

// SPAProgram reads the program from application state: first from item
// metadata keys, then from the longest program-like collection or
// community name. Pages without usable state fall back to the breadcrumb
// trail and meta tags.
func SPAProgram(p *Page) string {
	return spaProgram(p, SPAProgramKeys...)
}

func spaProgram(p *Page, keys ...string) string {
	if st, ok := p.State(); ok {
		if v := p.try("state keys", st.Metadata(keys...)); v != "" {
			return v
		}
		if v := p.try("state collection", st.ProgramCollection()); v != "" {
			return v
		}
	} else {
		p.stateFailure()
	}
	if v := p.try("breadcrumb", lastProgramCrumb(breadcrumbs(p, spaTrailSelectors...), p.ItemTitle())); v != "" {
		return v
	}
	return p.try("meta tags", metaProgram(p))
}

// SPAPDF prefers the citation meta tag, then a rendered download link,
// then a PDF bitstream recorded in application state.
func SPAPDF(p *Page) string {
	if v := p.try("citation meta", citationPDF(p)); v != "" {
		return v
	}
	if v := p.try("download link", bitstreamDownload(p)); v != "" {
		return v
	}
	if st, ok := p.State(); ok {
		return p.try("state bitstream", p.Resolve(st.BitstreamPDF()))
	}
	p.stateFailure()
	return ""
}

// State is the object cache of a parsed application-state blob.
type State struct {
	objects []gjson.Result
}

// stateSelectors locate the application-state script.
var stateSelectors = []string{
	"script#dspace-angular-state",
	"script#serverApp-state",
	"script[type='application/json']",
}

// ParseState extracts and parses the application-state blob of p.
// Returns ENOTFOUND when the page has no state script and EINVALID when
// the script is not valid JSON.
func ParseState(p *Page) (*State, error) {
	raw := stateScript(p.Doc)
	if raw == "" {
		return nil, repometa.Errorf(repometa.ENOTFOUND, "no application state")
	}

	text := UnescapeState(raw)
	if !gjson.Valid(text) {
		return nil, repometa.Errorf(repometa.EINVALID, "malformed application state")
	}

	st := &State{}
	cache := objectCache(gjson.Parse(text))
	cache.ForEach(func(_, entry gjson.Result) bool {
		obj := entry.Get("data")
		if !obj.IsObject() {
			obj = entry
		}
		if obj.IsObject() {
			st.objects = append(st.objects, obj)
		}
		return true
	})
	return st, nil
}

func stateScript(doc *goquery.Document) string {
	for _, sel := range stateSelectors {
		var raw string
		doc.Find(sel).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			text := s.Text()
			if strings.Contains(text, "&q;") || strings.Contains(text, "cache/object") ||
				strings.Contains(text, "objectCache") || strings.Contains(text, "NGRX_STATE") {
				raw = text
				return false
			}
			return true
		})
		if raw != "" {
			return raw
		}
	}
	return ""
}

// objectCache finds the cached-object map under the known state roots.
func objectCache(root gjson.Result) gjson.Result {
	for _, parent := range []gjson.Result{root.Get("NGRX_STATE.core"), root.Get("core"), root} {
		if !parent.IsObject() {
			continue
		}
		var cache gjson.Result
		parent.ForEach(func(key, value gjson.Result) bool {
			if k := key.String(); k == "cache/object" || k == "objectCache" {
				cache = value
				return false
			}
			return true
		})
		if cache.IsObject() {
			return cache
		}
	}
	return gjson.Result{}
}

// Len returns the number of cached objects.
func (st *State) Len() int {
	return len(st.objects)
}

// Metadata returns the first value found for keys, scanning objects in
// cache order and keys in the given order within each object.
func (st *State) Metadata(keys ...string) string {
	for _, obj := range st.objects {
		for _, key := range keys {
			if v := metadataValue(obj, key); v != "" {
				return v
			}
		}
	}
	return ""
}

// MetadataOf is like Metadata but only considers objects of the given type.
func (st *State) MetadataOf(kind string, keys ...string) string {
	for _, obj := range st.objects {
		if objectType(obj) != kind {
			continue
		}
		for _, key := range keys {
			if v := metadataValue(obj, key); v != "" {
				return v
			}
		}
	}
	return ""
}

// Names returns the names of cached objects of the given types.
func (st *State) Names(kinds ...string) []string {
	var names []string
	for _, obj := range st.objects {
		t := objectType(obj)
		for _, k := range kinds {
			if t == k {
				if name := objectName(obj); name != "" {
					names = append(names, name)
				}
				break
			}
		}
	}
	return names
}

// ProgramCollection returns the longest collection or community name that
// contains a program indicator. Longer names tend to be the full program
// title rather than an abbreviation; ties keep the first seen.
func (st *State) ProgramCollection() string {
	var best string
	for _, name := range st.Names("collection", "community") {
		if !containsAny(name, programIndicators...) {
			continue
		}
		if len([]rune(name)) > len([]rune(best)) {
			best = name
		}
	}
	return best
}

// BitstreamPDF returns the content link of the first PDF bitstream.
func (st *State) BitstreamPDF() string {
	for _, obj := range st.objects {
		if objectType(obj) != "bitstream" {
			continue
		}
		name := strings.ToLower(objectName(obj))
		format := strings.ToLower(metadataValue(obj, "dc.format.mimetype"))
		if !strings.HasSuffix(name, ".pdf") && format != "application/pdf" {
			continue
		}
		if href := obj.Get("_links.content.href").String(); href != "" {
			return href
		}
	}
	return ""
}

func objectType(obj gjson.Result) string {
	t := obj.Get("type")
	if t.IsObject() {
		t = t.Get("value")
	}
	return strings.ToLower(t.String())
}

func objectName(obj gjson.Result) string {
	if name := CleanText(obj.Get("name").String()); name != "" {
		return name
	}
	return metadataValue(obj, "dc.title")
}

// metadataValue returns the first non-empty value of a metadata key.
// Keys contain dots, which gjson paths treat as separators.
func metadataValue(obj gjson.Result, key string) string {
	field := obj.Get("metadata." + strings.ReplaceAll(key, ".", `\.`))
	switch {
	case field.IsArray():
		for _, v := range field.Array() {
			if s := CleanText(v.Get("value").String()); s != "" {
				return s
			}
		}
	case field.Type == gjson.String:
		return CleanText(field.String())
	}
	return ""
}
