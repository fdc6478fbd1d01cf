package goquery

import (
	"slices"

	"github.com/fwojciec/repometa"
)

var _ repometa.Resolver = (*Resolver)(nil)

// Rule selects a strategy with custom logic for matching sources.
type Rule struct {
	// Name identifies the rule (e.g., "ufrgs").
	Name string
	// Family is the platform family the strategy builds on.
	Family repometa.Family
	// Identity is the institution the strategy is bound to.
	Identity repometa.Identity
	// Patterns are the URL fragments the rule matches, for display.
	Patterns []string
	// Match reports whether the rule applies to sourceURL.
	Match func(sourceURL string) bool
	// New builds a fresh strategy. Options are applied last.
	New func(opts ...Option) *Strategy
}

// Resolver selects the strategy for a source. Resolution order is:
// hardcoded rules, the site table, content sniffing, then the generic
// fallback. Every call builds a new strategy. A Resolver is immutable
// after construction and safe for concurrent use.
type Resolver struct {
	rules    []Rule
	sites    []repometa.SiteEntry
	detector repometa.PlatformDetector
	opts     []Option
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithRules replaces the hardcoded rules. Rules are tried in order.
func WithRules(rules ...Rule) ResolverOption {
	return func(r *Resolver) { r.rules = slices.Clone(rules) }
}

// WithSites sets the site table. Entries are tried in order.
func WithSites(sites []repometa.SiteEntry) ResolverOption {
	return func(r *Resolver) { r.sites = slices.Clone(sites) }
}

// WithDetector replaces the content sniffer.
func WithDetector(d repometa.PlatformDetector) ResolverOption {
	return func(r *Resolver) { r.detector = d }
}

// WithStrategyOptions sets options applied to every resolved strategy,
// such as a logger or progress callback.
func WithStrategyOptions(opts ...Option) ResolverOption {
	return func(r *Resolver) { r.opts = slices.Clone(opts) }
}

// NewResolver returns a Resolver using the built-in institution rules and
// the default Detector, with an empty site table.
func NewResolver(opts ...ResolverOption) *Resolver {
	r := &Resolver{
		rules:    Overrides(),
		detector: NewDetector(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve implements repometa.Resolver.
func (r *Resolver) Resolve(sourceURL string, body string) repometa.Extractor {
	return r.Strategy(sourceURL, body)
}

// Strategy returns a fresh strategy for sourceURL. The body is used for
// content sniffing and may be empty.
func (r *Resolver) Strategy(sourceURL string, body string) *Strategy {
	for _, rule := range r.rules {
		if rule.Match != nil && rule.Match(sourceURL) {
			return rule.New(r.opts...)
		}
	}

	for i := range r.sites {
		site := &r.sites[i]
		if site.Matches(sourceURL) {
			opts := append([]Option{WithIdentity(site.Identity())}, r.opts...)
			return NewFamily(site.Family, opts...)
		}
	}

	if body != "" && r.detector != nil {
		if family := r.detector.Detect(body); family != repometa.FamilyUnknown {
			return NewFamily(family, r.opts...)
		}
	}

	return NewGeneric(r.opts...)
}

// Rules returns a copy of the hardcoded rules in resolution order.
func (r *Resolver) Rules() []Rule {
	return slices.Clone(r.rules)
}

// Sites returns a copy of the site table.
func (r *Resolver) Sites() []repometa.SiteEntry {
	return slices.Clone(r.sites)
}

// Extract resolves a strategy and runs it.
func (r *Resolver) Extract(body string, sourceURL string) repometa.Record {
	return r.Strategy(sourceURL, body).Extract(body, sourceURL)
}

// NewFamily returns the default strategy of family. Unknown families get
// the generic strategy.
func NewFamily(family repometa.Family, opts ...Option) *Strategy {
	switch family {
	case repometa.FamilyClassic:
		return NewClassic(opts...)
	case repometa.FamilySPA:
		return NewSPA(opts...)
	default:
		return NewGeneric(opts...)
	}
}
