package batch

import (
	"context"
	"fmt"

	"github.com/fwojciec/repometa"
)

// Reprocessor re-extracts records from stored raw pages without network
// access, typically after extraction rules change. Logs is optional.
type Reprocessor struct {
	Engine      *repometa.Engine
	Pages       repometa.PageService
	Records     repometa.RecordService
	Logs        repometa.LogService
	Concurrency int
}

// Reprocess re-extracts every stored page matching filter and replaces
// its record.
func (r *Reprocessor) Reprocess(ctx context.Context, filter repometa.PageFilter, progress ProgressFunc) (*Result, error) {
	pages, err := r.Pages.FindPages(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find pages: %w", err)
	}

	return run(ctx, len(pages), r.Concurrency, progress, func(ctx context.Context, i int) itemResult {
		page := pages[i]
		result := itemResult{url: page.URL, bytes: len(page.Body)}
		if err := ctx.Err(); err != nil {
			result.err = err
			return result
		}
		result.strategy, result.missing, result.err = extractAndSave(ctx, r.Engine, r.Records, r.Logs, page)
		return result
	})
}
