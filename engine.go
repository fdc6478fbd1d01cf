package repometa

// Engine is the extraction entry point: it resolves a strategy for each
// call and runs it.
type Engine struct {
	Resolver Resolver
}

// NewEngine returns an Engine that resolves strategies with r.
func NewEngine(r Resolver) *Engine {
	return &Engine{Resolver: r}
}

// Extract resolves a strategy for sourceURL and body and runs it.
// It never fails; fields that cannot be extracted hold Sentinel.
func (e *Engine) Extract(body string, sourceURL string) Record {
	rec, _ := e.ExtractNamed(body, sourceURL)
	return rec
}

// ExtractNamed is like Extract but also returns the name of the strategy
// that produced the record.
func (e *Engine) ExtractNamed(body string, sourceURL string) (Record, string) {
	ext := e.Resolver.Resolve(sourceURL, body)
	return ext.Extract(body, sourceURL), ext.Name()
}
