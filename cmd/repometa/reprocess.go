package main

import (
	"fmt"

	"github.com/fwojciec/repometa"
	"github.com/fwojciec/repometa/batch"
)

// Run executes the reprocess command.
func (c *ReprocessCmd) Run(deps *Dependencies) error {
	filter := repometa.PageFilter{}
	if c.Host != "" {
		filter.Host = &c.Host
	}

	progress := func(event batch.ProgressEvent) {
		switch event.Type {
		case batch.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "Reprocessing %d pages\n", event.Total)
		case batch.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  fail %s: %v\n", batch.ShortURL(event.URL, 80), event.Error)
		}
	}

	result, err := deps.Reprocessor.Reprocess(deps.Ctx, filter, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", repometa.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Updated %d records (%d incomplete), %d failed\n",
		result.Saved, result.Incomplete, result.Failed)
	return nil
}
