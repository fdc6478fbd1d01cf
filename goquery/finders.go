package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// maxValueLen bounds values taken from labelled rows; anything longer is
// page text rather than a field value.
const maxValueLen = 200

// citationPDF returns the citation_pdf_url meta value.
func citationPDF(p *Page) string {
	return p.Resolve(p.Meta("citation_pdf_url", "eprints.document_url"))
}

// firstLink returns the first resolved link accepted by keep.
// keep receives the lowercased path of the href and the link text.
func firstLink(p *Page, selector string, keep func(path, text string) bool) string {
	var found string
	p.Doc.Find(selector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		href, ok := s.Attr("href")
		if !ok {
			return true
		}
		if !keep(linkPath(href), CleanText(s.Text())) {
			return true
		}
		if resolved := p.Resolve(href); resolved != "" {
			found = resolved
			return false
		}
		return true
	})
	return found
}

// bitstreamPDF finds a classic bitstream link to a PDF file.
func bitstreamPDF(p *Page) string {
	return firstLink(p, "a[href]", func(path, _ string) bool {
		return strings.Contains(path, "/bitstream/") && strings.HasSuffix(path, ".pdf")
	})
}

// bitstreamDownload finds a single-page-application download link.
func bitstreamDownload(p *Page) string {
	return firstLink(p, "a[href]", func(path, _ string) bool {
		return strings.Contains(path, "/bitstreams/") && strings.Contains(path, "/download")
	})
}

// Breadcrumb selectors, most specific first.
var (
	classicTrailSelectors = []string{
		"#ds-trail li",
		"ol.breadcrumb li",
		"ul.breadcrumb li",
		".breadcrumb li",
		"nav[aria-label='breadcrumb'] li",
		".trail li",
		".breadcrumbs a",
		"#breadcrumbs a",
	}
	spaTrailSelectors = []string{
		"ds-breadcrumbs li",
		"nav[aria-label='breadcrumb'] li",
		".breadcrumb li",
	}
)

// breadcrumbs returns the trail entries of the first selector that
// matches anything.
func breadcrumbs(p *Page, selectors ...string) []string {
	for _, sel := range selectors {
		var crumbs []string
		p.Doc.Find(sel).Each(func(_ int, s *goquery.Selection) {
			if text := CleanText(s.Text()); text != "" {
				crumbs = append(crumbs, text)
			}
		})
		if len(crumbs) > 0 {
			return crumbs
		}
	}
	return nil
}

// genericCrumbs are trail labels that never name a program: home links,
// repository names, navigation verbs and document-type labels.
var genericCrumbs = []string{
	"home", "inicio", "início", "pagina inicial", "página inicial", "dspace home", "dspace",
	"repositorio", "repositório", "repositorio institucional", "repositório institucional",
	"repository", "institutional repository", "biblioteca digital",
	"view item", "ver item", "item", "visualizar item", "ver registro", "show item",
	"teses", "tese", "theses", "thesis", "dissertacoes", "dissertações", "dissertacao", "dissertação",
	"dissertations", "dissertation", "teses e dissertacoes", "teses e dissertações",
	"theses and dissertations", "teses e dissertacoes defendidas", "producao cientifica", "produção científica",
	"mestrado", "doutorado", "masters", "doctorate", "communities & collections",
	"comunidades e colecoes", "comunidades e coleções", "trabalhos de conclusao de curso",
}

// isGenericCrumb reports whether a trail entry is boilerplate or the item
// title itself.
func isGenericCrumb(crumb, itemTitle string) bool {
	if equalsAny(crumb, genericCrumbs...) {
		return true
	}
	f := Fold(crumb)
	if strings.HasPrefix(f, "ver item") || strings.HasPrefix(f, "view item") {
		return true
	}
	return itemTitle != "" && f == Fold(itemTitle)
}

// lastProgramCrumb returns the last trail entry that is not generic.
func lastProgramCrumb(crumbs []string, itemTitle string) string {
	for i := len(crumbs) - 1; i >= 0; i-- {
		if !isGenericCrumb(crumbs[i], itemTitle) {
			return crumbs[i]
		}
	}
	return ""
}

// labelCandidates are elements that may hold a field label.
const labelCandidates = "td, th, dt, h4, h5, h6, strong, b, label, span, p, li, div"

// labelledValue finds an element whose text equals one of labels and
// returns the value next to it: the next sibling element, the trailing
// text of the parent, or the text after "Label:" in the same element.
func labelledValue(p *Page, labels ...string) string {
	var value string
	p.Doc.Find(labelCandidates).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		own := CleanText(s.Text())
		if own == "" || len(own) > maxValueLen+40 {
			return true
		}
		if equalsAny(own, labels...) {
			if v := CleanText(s.Next().Text()); v != "" && len(v) <= maxValueLen {
				value = v
				return false
			}
			parent := CleanText(s.Parent().Text())
			if v := strings.TrimLeft(strings.TrimPrefix(parent, own), ": "); v != "" && v != parent && len(v) <= maxValueLen {
				value = v
				return false
			}
			return true
		}
		if s.Children().Length() > 0 {
			return true
		}
		if v := afterLabel(own, labels...); v != "" {
			value = v
			return false
		}
		return true
	})
	return value
}

// afterLabel returns the text following "Label:" when text starts with
// one of labels followed by a colon.
func afterLabel(text string, labels ...string) string {
	i := strings.Index(text, ":")
	if i <= 0 || !equalsAny(text[:i], labels...) {
		return ""
	}
	v := CleanText(text[i+1:])
	if len(v) > maxValueLen {
		return ""
	}
	return v
}

// fieldValue finds the value of a metadata field identified structurally:
// a value cell carrying the field as a class (dc_contributor_program) or a
// full-record table row whose first cell is the field name.
func fieldValue(p *Page, fields ...string) string {
	for _, field := range fields {
		class := "." + strings.ReplaceAll(field, ".", "_")
		if v := CleanText(p.Doc.Find(class).Not(".metadataFieldLabel").First().Text()); v != "" && len(v) <= maxValueLen {
			return v
		}
		var value string
		p.Doc.Find("tr").EachWithBreak(func(_ int, row *goquery.Selection) bool {
			cells := row.Children().Filter("td, th")
			if cells.Length() < 2 || !strings.EqualFold(CleanText(cells.First().Text()), field) {
				return true
			}
			value = CleanText(cells.Eq(1).Text())
			return value == ""
		})
		if value != "" && len(value) <= maxValueLen {
			return value
		}
	}
	return ""
}

// programMetaKeywords select meta tags that may carry the program, in
// order of preference.
var programMetaKeywords = []string{"program", "programa", "department", "departamento", "course", "curso"}

// metaProgram scans meta tags for a program-like field name.
func metaProgram(p *Page) string {
	tags := p.MetaTags()
	for _, kw := range programMetaKeywords {
		for _, tag := range tags {
			name := strings.ToLower(tag.Name)
			if strings.HasPrefix(name, "og:") || strings.Contains(name, "pdf") {
				continue
			}
			if strings.Contains(name, kw) && tag.Content != "" {
				return tag.Content
			}
		}
	}
	return ""
}

// firstText returns the cleaned text of the first non-empty match of any
// selector.
func firstText(p *Page, selectors ...string) string {
	for _, sel := range selectors {
		var text string
		p.Doc.Find(sel).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			text = CleanText(s.Text())
			return text == ""
		})
		if text != "" {
			return text
		}
	}
	return ""
}
