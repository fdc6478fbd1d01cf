package mock

import "github.com/fwojciec/repometa"

var (
	_ repometa.Extractor        = (*Extractor)(nil)
	_ repometa.PlatformDetector = (*PlatformDetector)(nil)
	_ repometa.Resolver         = (*Resolver)(nil)
)

// Extractor is a mock implementation of repometa.Extractor.
type Extractor struct {
	ExtractFn func(body, sourceURL string) repometa.Record
	NameFn    func() string
}

func (e *Extractor) Extract(body, sourceURL string) repometa.Record {
	return e.ExtractFn(body, sourceURL)
}

func (e *Extractor) Name() string {
	return e.NameFn()
}

// PlatformDetector is a mock implementation of repometa.PlatformDetector.
type PlatformDetector struct {
	DetectFn func(body string) repometa.Family
}

func (d *PlatformDetector) Detect(body string) repometa.Family {
	return d.DetectFn(body)
}

// Resolver is a mock implementation of repometa.Resolver.
type Resolver struct {
	ResolveFn func(sourceURL, body string) repometa.Extractor
}

func (r *Resolver) Resolve(sourceURL, body string) repometa.Extractor {
	return r.ResolveFn(sourceURL, body)
}
