package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/repometa"
)

// override describes an institution whose pages need custom steps on top
// of a family strategy. Nil steps keep the family default.
type override struct {
	name    string
	hosts   []string
	id      repometa.Identity
	family  repometa.Family
	program ProgramFinder
	pdf     PDFFinder
	cleaner NameCleaner
	who     IdentityFinder
}

// rule turns the override into a resolver rule.
func (o override) rule() Rule {
	hosts := o.hosts
	return Rule{
		Name:     o.name,
		Family:   o.family,
		Identity: o.id,
		Patterns: hosts,
		Match: func(sourceURL string) bool {
			for _, h := range hosts {
				if repometa.URLContains(sourceURL, h) {
					return true
				}
			}
			return false
		},
		New: func(opts ...Option) *Strategy {
			base := []Option{
				WithName(string(o.family) + ":" + o.name),
				WithIdentity(o.id),
			}
			if o.program != nil {
				base = append(base, WithProgramFinder(o.program))
			}
			if o.pdf != nil {
				base = append(base, WithPDFFinder(o.pdf))
			}
			if o.cleaner != nil {
				base = append(base, WithCleaner(o.cleaner))
			}
			if o.who != nil {
				base = append(base, WithIdentityFinder(o.who))
			}
			return NewFamily(o.family, append(base, opts...)...)
		},
	}
}

// Overrides returns the built-in institution rules in resolution order.
func Overrides() []Rule {
	var all []override
	all = append(all, federalOverrides...)
	all = append(all, stateOverrides...)
	all = append(all, otherOverrides...)

	rules := make([]Rule, 0, len(all))
	for _, o := range all {
		rules = append(rules, o.rule())
	}
	return rules
}

func identity(acronym, name string) repometa.Identity {
	return repometa.Identity{Acronym: acronym, Name: name}
}

// Program-step combinators. Every override chain ends with the family
// default so institution code only describes what differs.

// chain returns the first non-empty result of finders.
func chain(finders ...ProgramFinder) ProgramFunc {
	return func(p *Page) string {
		for _, f := range finders {
			if v := CleanText(f.FindProgram(p)); v != "" {
				return v
			}
		}
		return ""
	}
}

// bySelector reads the text of the first non-empty element matching any
// selector.
func bySelector(selectors ...string) ProgramFunc {
	return func(p *Page) string {
		if v := firstText(p, selectors...); len(v) <= maxValueLen {
			return p.try("selector", v)
		}
		return p.try("selector", "")
	}
}

// byLabel reads the value next to one of labels.
func byLabel(labels ...string) ProgramFunc {
	return func(p *Page) string { return p.try("label", labelledValue(p, labels...)) }
}

// byField reads a metadata-table field by its structural identifier.
func byField(fields ...string) ProgramFunc {
	return func(p *Page) string { return p.try("field id", fieldValue(p, fields...)) }
}

// byMeta reads the first non-empty meta tag among names.
func byMeta(names ...string) ProgramFunc {
	return func(p *Page) string { return p.try("meta tags", p.Meta(names...)) }
}

// crumbAt returns the breadcrumb at index; negative indexes count from
// the end of the trail. Generic entries are rejected.
func crumbAt(index int) ProgramFunc {
	return func(p *Page) string {
		crumbs := breadcrumbs(p, append(classicTrailSelectors, spaTrailSelectors...)...)
		i := index
		if i < 0 {
			i += len(crumbs)
		}
		if i < 0 || i >= len(crumbs) || isGenericCrumb(crumbs[i], p.ItemTitle()) {
			return p.try("breadcrumb", "")
		}
		return p.try("breadcrumb", crumbs[i])
	}
}

// spaKeys reads application-state metadata keys only.
func spaKeys(keys ...string) ProgramFunc {
	return func(p *Page) string {
		st, ok := p.State()
		if !ok {
			p.stateFailure()
			return ""
		}
		return p.try("state keys", st.Metadata(keys...))
	}
}

// spaCollection picks the longest state collection name containing one of
// the indicators.
func spaCollection(indicators ...string) ProgramFunc {
	return func(p *Page) string {
		st, ok := p.State()
		if !ok {
			p.stateFailure()
			return ""
		}
		var best string
		for _, name := range st.Names("collection", "community") {
			if containsAny(name, indicators...) && len([]rune(name)) > len([]rune(best)) {
				best = name
			}
		}
		return p.try("state collection", best)
	}
}

// stateCollections returns every collection and community name in the
// application state.
func stateCollections(p *Page) string {
	st, ok := p.State()
	if !ok {
		return ""
	}
	return strings.Join(st.Names("collection", "community"), " > ")
}

// byPattern applies re to the result of src and returns the first
// capture group, or the whole match when re has no groups.
func byPattern(re *regexp.Regexp, src ProgramFinder) ProgramFunc {
	return func(p *Page) string {
		m := re.FindStringSubmatch(src.FindProgram(p))
		switch {
		case m == nil:
			return p.try("degree note", "")
		case len(m) > 1:
			return p.try("degree note", CleanText(m[1]))
		default:
			return p.try("degree note", CleanText(m[0]))
		}
	}
}

// programNoteRe captures the program from a thesis note such as
// "Dissertação (mestrado) - Universidade X, Programa de Pós-Graduação em
// Química, Cidade, 2020."
var programNoteRe = regexp.MustCompile(`(?i)(programa\s+de\s+p[oó]s[\s-]*gradua[cç][aã]o[^,.;]*)`)

// fromNote finds the program inside a free-text degree note.
func fromNote(fields ...string) ProgramFunc {
	return byPattern(programNoteRe, chain(byField(fields...), byMeta(metaFields(fields)...)))
}

// metaFields returns the meta tag names under which Dublin Core fields
// are published.
func metaFields(fields []string) []string {
	names := make([]string, 0, len(fields))
	for _, f := range fields {
		if rest, ok := strings.CutPrefix(f, "dc."); ok {
			f = "DC." + rest
		}
		names = append(names, f)
	}
	return names
}

var codeTokenRe = regexp.MustCompile(`[A-Z][A-Z0-9]+`)

// byCode maps internal unit codes found in the output of sources to
// program names. The first code with a mapping wins.
func byCode(codes map[string]string, sources ...ProgramFinder) ProgramFunc {
	return func(p *Page) string {
		for _, src := range sources {
			for _, tok := range codeTokenRe.FindAllString(src.FindProgram(p), -1) {
				if name, ok := codes[tok]; ok {
					return p.try("unit code", name)
				}
			}
		}
		return p.try("unit code", "")
	}
}

// allCrumbs returns the whole breadcrumb trail joined by " > ".
func allCrumbs(p *Page) string {
	return strings.Join(breadcrumbs(p, append(classicTrailSelectors, spaTrailSelectors...)...), " > ")
}

// handleLinks returns the text of links into the handle space, where
// collection codes usually appear.
func handleLinks(p *Page) string {
	var parts []string
	p.Doc.Find("a[href*='/handle/'], a[href*='/collections/']").Each(func(_ int, s *goquery.Selection) {
		if t := CleanText(s.Text()); t != "" {
			parts = append(parts, t)
		}
	})
	return strings.Join(parts, " ")
}

// PDF-step combinators.

// pdfChain returns the first non-empty result of finders.
func pdfChain(finders ...PDFFinder) PDFFunc {
	return func(p *Page) string {
		for _, f := range finders {
			if v := f.FindPDF(p); v != "" {
				return v
			}
		}
		return ""
	}
}

// linkPattern returns the first link whose href matches re.
func linkPattern(re *regexp.Regexp) PDFFunc {
	return func(p *Page) string {
		var found string
		p.Doc.Find("a[href]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
			href := s.AttrOr("href", "")
			if !re.MatchString(href) {
				return true
			}
			found = p.Resolve(href)
			return found == ""
		})
		return p.try("link pattern", found)
	}
}

// metaLink reads a document link from the first non-empty meta tag.
func metaLink(names ...string) PDFFunc {
	return func(p *Page) string { return p.try("meta link", p.Resolve(p.Meta(names...))) }
}

// linkText returns the first link whose caption equals one of texts.
func linkText(texts ...string) PDFFunc {
	return func(p *Page) string {
		return p.try("link caption", firstLink(p, "a[href]", func(_, text string) bool {
			return equalsAny(text, texts...)
		}))
	}
}

// cleanerWith returns a cleaner that also strips the given patterns.
func cleanerWith(patterns ...string) *Cleaner {
	res := make([]*regexp.Regexp, 0, len(patterns))
	for _, pat := range patterns {
		res = append(res, regexp.MustCompile(pat))
	}
	return NewCleaner(res...)
}

// unit is a sub-unit of a larger institution recognised by a marker in
// page text.
type unit struct {
	marker string
	id     repometa.Identity
}

// unitsBy reports the identity of the first unit whose marker appears in
// the text produced by src. The bound identity fills any blank fields and
// is returned unchanged when no marker matches.
func unitsBy(src ProgramFinder, units ...unit) IdentityFunc {
	return func(p *Page, bound repometa.Identity) repometa.Identity {
		text := src.FindProgram(p)
		if text == "" {
			return bound
		}
		for _, u := range units {
			if containsAny(text, u.marker) {
				return u.id.Merge(bound)
			}
		}
		return bound
	}
}

// unitText gathers the publisher metadata and breadcrumb trail, where
// sub-unit names are usually found.
func unitText(p *Page) string {
	return strings.Join([]string{
		p.Meta("citation_publisher", "DC.publisher", "dc.publisher", "citation_dissertation_institution"),
		fieldValue(p, "dc.publisher", "dc.publisher.department", "dc.contributor.institution"),
		allCrumbs(p),
	}, " ")
}
