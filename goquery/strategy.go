package goquery

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/fwojciec/repometa"
)

// ProgramFinder locates the raw graduate-program name on a page.
// It returns "" when no program indicator is present.
type ProgramFinder interface {
	FindProgram(p *Page) string
}

// ProgramFunc adapts a function to ProgramFinder.
type ProgramFunc func(p *Page) string

// FindProgram calls f(p).
func (f ProgramFunc) FindProgram(p *Page) string { return f(p) }

// PDFFinder locates the absolute URL of the primary document.
// It returns "" when no document link is present.
type PDFFinder interface {
	FindPDF(p *Page) string
}

// PDFFunc adapts a function to PDFFinder.
type PDFFunc func(p *Page) string

// FindPDF calls f(p).
func (f PDFFunc) FindPDF(p *Page) string { return f(p) }

// IdentityFinder decides the institution identity reported for a page.
// It receives the identity the strategy was bound to and returns the
// identity to report. The result only affects the returned record; the
// strategy itself is never modified.
type IdentityFinder interface {
	FindIdentity(p *Page, bound repometa.Identity) repometa.Identity
}

// IdentityFunc adapts a function to IdentityFinder.
type IdentityFunc func(p *Page, bound repometa.Identity) repometa.Identity

// FindIdentity calls f(p, bound).
func (f IdentityFunc) FindIdentity(p *Page, bound repometa.Identity) repometa.Identity {
	return f(p, bound)
}

var _ repometa.Extractor = (*Strategy)(nil)

// Strategy is an extraction algorithm bound to an institution identity.
// Its behaviour is composed from a ProgramFinder, a PDFFinder, a
// NameCleaner and an optional IdentityFinder. Strategy holds no state
// between Extract calls and is safe for concurrent use.
type Strategy struct {
	name     string
	identity repometa.Identity
	program  ProgramFinder
	pdf      PDFFinder
	cleaner  NameCleaner
	who      IdentityFinder
	progress repometa.ProgressFunc
	logger   *slog.Logger
}

// Option configures a Strategy.
type Option func(*Strategy)

// WithName sets the strategy identifier.
func WithName(name string) Option {
	return func(s *Strategy) { s.name = name }
}

// WithIdentity binds the strategy to an institution.
func WithIdentity(id repometa.Identity) Option {
	return func(s *Strategy) { s.identity = id }
}

// WithProgramFinder replaces the program-name step.
func WithProgramFinder(f ProgramFinder) Option {
	return func(s *Strategy) { s.program = f }
}

// WithPDFFinder replaces the PDF-link step.
func WithPDFFinder(f PDFFinder) Option {
	return func(s *Strategy) { s.pdf = f }
}

// WithCleaner replaces the program-name cleaning step.
func WithCleaner(c NameCleaner) Option {
	return func(s *Strategy) { s.cleaner = c }
}

// WithIdentityFinder sets the step that may refine the reported identity
// from page content.
func WithIdentityFinder(f IdentityFinder) Option {
	return func(s *Strategy) { s.who = f }
}

// WithProgress sets the progress callback.
func WithProgress(fn repometa.ProgressFunc) Option {
	return func(s *Strategy) { s.progress = fn }
}

// WithLogger sets the logger used for debug diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Strategy) { s.logger = logger }
}

// NewStrategy returns a strategy with no program finder, the citation
// meta PDF finder and the default cleaner, then applies opts.
func NewStrategy(opts ...Option) *Strategy {
	s := &Strategy{
		name:    "base",
		program: ProgramFunc(func(*Page) string { return "" }),
		pdf:     PDFFunc(citationPDF),
		cleaner: DefaultCleaner,
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the strategy identifier.
func (s *Strategy) Name() string {
	return s.name
}

// Identity returns the identity the strategy is bound to.
func (s *Strategy) Identity() repometa.Identity {
	return s.identity
}

// Extract parses body and returns the extracted record. A step that fails
// leaves its field at repometa.Sentinel without affecting other fields.
// An empty or unparseable body yields a sentinel record that still
// carries the bound identity.
func (s *Strategy) Extract(body string, sourceURL string) repometa.Record {
	rec := repometa.Record{
		Acronym:         s.identity.Acronym,
		InstitutionName: s.identity.Name,
	}
	s.notify("strategy %s selected for %s", s.name, sourceURL)

	page, err := NewPage(body, sourceURL)
	if err != nil {
		s.notify("document unusable: %s", repometa.ErrorMessage(err))
		return rec.Normalize()
	}
	page.logger = s.logger.With("strategy", s.name)

	if s.who != nil {
		id := s.findIdentity(page)
		rec.Acronym, rec.InstitutionName = id.Acronym, id.Name
	}

	page.attempts = nil
	raw := s.FindProgram(page)
	via, tried := page.trace(raw)
	if raw == "" {
		s.notify("program not found%s", triedSuffix(tried))
	} else if rec.ProgramName = s.CleanProgramName(raw); rec.ProgramName == "" {
		s.notify("program %q found%s is empty after cleaning", raw, viaSuffix(via))
	} else {
		s.notify("program found%s: %s", viaSuffix(via), rec.ProgramName)
	}

	link := s.FindPDF(page)
	via, tried = page.trace(link)
	if link != "" {
		rec.PDFLink = link
		s.notify("pdf found%s: %s", viaSuffix(via), link)
	} else {
		s.notify("pdf not found%s", triedSuffix(tried))
	}

	return rec.Normalize()
}

// FindProgram runs the program step. Failures are reported as "".
func (s *Strategy) FindProgram(p *Page) string {
	return s.guard("find_program", func() string { return s.program.FindProgram(p) })
}

// FindPDF runs the PDF step. Failures are reported as "".
func (s *Strategy) FindPDF(p *Page) string {
	return s.guard("find_pdf", func() string { return s.pdf.FindPDF(p) })
}

// CleanProgramName runs the cleaning step. Failures are reported as "".
func (s *Strategy) CleanProgramName(raw string) string {
	return s.guard("clean_program_name", func() string { return s.cleaner.CleanProgramName(raw) })
}

func (s *Strategy) findIdentity(p *Page) (id repometa.Identity) {
	id = s.identity
	defer func() {
		if r := recover(); r != nil {
			s.logger.Debug("extraction step failed", "strategy", s.name, "step", "find_identity", "panic", r)
			id = s.identity
		}
	}()
	return s.who.FindIdentity(p, s.identity)
}

// guard runs fn, converting panics and sentinel results into "".
func (s *Strategy) guard(step string, fn func() string) (out string) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Debug("extraction step failed", "strategy", s.name, "step", step, "panic", r)
			out = ""
		}
	}()
	out = strings.TrimSpace(fn())
	if out == repometa.Sentinel {
		return ""
	}
	return out
}

func viaSuffix(step string) string {
	if step == "" {
		return ""
	}
	return " via " + step
}

func triedSuffix(steps []string) string {
	if len(steps) == 0 {
		return ""
	}
	return " (tried " + strings.Join(steps, ", ") + ")"
}

func (s *Strategy) notify(format string, args ...any) {
	if s.progress == nil {
		return
	}
	s.progress(fmt.Sprintf(format, args...))
}
