package goquery

import (
	"strings"

	"github.com/fwojciec/repometa"
)

// genericLabels are free-text labels that precede a program value.
var genericLabels = []string{"program", "course", "programa", "curso"}

// crumbKeywords mark breadcrumb entries that name a program.
var crumbKeywords = []string{
	"program", "programa", "pós-graduação", "pos-graduacao", "graduate",
	"mestrado", "doutorado", "masters", "doctorate", "curso", "course",
}

// pdfLinkTexts are link captions that point at the full text.
var pdfLinkTexts = []string{
	"view/open", "view / open", "download", "full text", "fulltext",
	"visualizar/abrir", "visualizar / abrir", "visualizar", "abrir", "baixar", "texto completo",
}

// nonDocumentExts are link suffixes that are never the primary document.
var nonDocumentExts = []string{".jpg", ".jpeg", ".png", ".gif", ".txt", ".svg"}

// NewGeneric returns the platform-agnostic fallback strategy. It infers
// the institution from page metadata when no identity is bound.
func NewGeneric(opts ...Option) *Strategy {
	base := []Option{
		WithName(string(repometa.FamilyGeneric)),
		WithProgramFinder(ProgramFunc(GenericProgram)),
		WithPDFFinder(PDFFunc(GenericPDF)),
		WithIdentityFinder(IdentityFunc(InferIdentity)),
	}
	return NewStrategy(append(base, opts...)...)
}

// GenericProgram tries program-like meta tags, then breadcrumb entries
// containing program keywords, then "Program:"-style labels.
func GenericProgram(p *Page) string {
	if v := p.try("meta tags", metaProgram(p)); v != "" {
		return v
	}
	if v := p.try("breadcrumb keyword", keywordCrumb(p)); v != "" {
		return v
	}
	return p.try("label", labelledValue(p, genericLabels...))
}

// keywordCrumb returns the last breadcrumb entry containing a program
// keyword.
func keywordCrumb(p *Page) string {
	crumbs := breadcrumbs(p, classicTrailSelectors...)
	title := p.ItemTitle()
	for i := len(crumbs) - 1; i >= 0; i-- {
		if isGenericCrumb(crumbs[i], title) {
			continue
		}
		if containsAny(crumbs[i], crumbKeywords...) {
			return crumbs[i]
		}
	}
	return ""
}

// GenericPDF tries the citation meta tag, a link ending in .pdf, a
// bitstream or download link that is not an image or text file, and
// finally a link captioned like a full-text link.
func GenericPDF(p *Page) string {
	if v := p.try("citation meta", citationPDF(p)); v != "" {
		return v
	}
	if v := p.try("pdf link", firstLink(p, "a[href]", func(path, _ string) bool {
		return strings.HasSuffix(path, ".pdf")
	})); v != "" {
		return v
	}
	if v := p.try("bitstream link", firstLink(p, "a[href]", func(path, _ string) bool {
		if !strings.Contains(path, "bitstream") && !strings.Contains(path, "download") {
			return false
		}
		for _, ext := range nonDocumentExts {
			if strings.HasSuffix(path, ext) {
				return false
			}
		}
		return true
	})); v != "" {
		return v
	}
	return p.try("link caption", firstLink(p, "a[href]", func(_, text string) bool {
		return equalsAny(text, pdfLinkTexts...)
	}))
}

// InferIdentity names the institution from publisher metadata or the
// last "|" segment of the page title. A bound identity is returned
// unchanged.
func InferIdentity(p *Page, bound repometa.Identity) repometa.Identity {
	if !bound.IsZero() {
		return bound
	}
	name := p.Meta("citation_publisher", "citation_dissertation_institution", "DC.publisher", "dc.publisher", "og:site_name")
	if name == "" {
		if title := p.Title(); strings.Contains(title, "|") {
			parts := strings.Split(title, "|")
			name = CleanText(parts[len(parts)-1])
		}
	}
	if name == "" || len(name) > maxValueLen {
		return bound
	}
	return repometa.Identity{Name: name}
}
