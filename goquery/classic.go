package goquery

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/repometa"
)

// ProgramFields are the structural identifiers of the program field in
// catalog metadata tables, most common first.
var ProgramFields = []string{
	"dc.contributor.program",
	"dc.publisher.program",
	"dc.description.program",
	"thesis.degree.program",
	"dc.subject.program",
	"local.program",
}

// ProgramLabels are the human-readable labels of the program field.
var ProgramLabels = []string{
	"programa de pós-graduação",
	"programa de pós graduação",
	"programa",
	"program",
	"graduate program",
	"pós-graduação",
	"curso",
}

// collectionLabels introduce the collections an item appears in.
var collectionLabels = []string{
	"appears in collections",
	"appears in collection",
	"aparece nas coleções",
	"aparece na coleção",
	"aparece en las colecciones",
}

// NewClassic returns the strategy for server-rendered catalog pages.
// Options are applied after the family defaults.
func NewClassic(opts ...Option) *Strategy {
	base := []Option{
		WithName(string(repometa.FamilyClassic)),
		WithProgramFinder(ProgramFunc(ClassicProgram)),
		WithPDFFinder(PDFFunc(ClassicPDF)),
	}
	return NewStrategy(append(base, opts...)...)
}

// ClassicProgram tries, in order: the structural field identifier, the
// field label, the "appears in collections" block and the breadcrumb
// trail. Earlier sources are more reliable.
func ClassicProgram(p *Page) string {
	if v := p.try("field id", fieldValue(p, ProgramFields...)); v != "" {
		return v
	}
	if v := p.try("label", labelledValue(p, ProgramLabels...)); v != "" {
		return v
	}
	if v := p.try("collection", collectionName(p)); v != "" {
		return v
	}
	return p.try("breadcrumb", lastProgramCrumb(breadcrumbs(p, classicTrailSelectors...), p.ItemTitle()))
}

// ClassicPDF prefers the citation meta tag and falls back to the first
// bitstream link to a PDF.
func ClassicPDF(p *Page) string {
	if v := p.try("citation meta", citationPDF(p)); v != "" {
		return v
	}
	return p.try("bitstream link", bitstreamPDF(p))
}

// collectionName returns the first collection listed after an
// "appears in collections" label.
func collectionName(p *Page) string {
	var name string
	p.Doc.Find("td, th, h2, h3, h4, h5, dt, strong, div.panel-heading, span").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if !equalsAny(CleanText(s.Text()), collectionLabels...) {
			return true
		}
		for _, next := range []*goquery.Selection{s.Next(), s.Parent().Next()} {
			if v := CleanText(next.Find("a").First().Text()); v != "" {
				name = v
				return false
			}
			if v := CleanText(next.Text()); v != "" && len(v) <= maxValueLen {
				name = v
				return false
			}
		}
		return true
	})
	return name
}
