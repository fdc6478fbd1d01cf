// Package batch orchestrates harvesting of repository item pages: fetching,
// storing raw pages, running the extraction engine and persisting records,
// as well as re-extraction of stored pages.
package batch

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/fwojciec/repometa"
	"github.com/fwojciec/repometa/bloom"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is used when a Harvester or Reprocessor has no
// concurrency configured.
const DefaultConcurrency = 4

// Harvester fetches item pages, stores them and extracts their records.
// Logs, Health, RateLimiter and Seen are optional.
type Harvester struct {
	Fetcher     repometa.Fetcher
	Engine      *repometa.Engine
	Pages       repometa.PageService
	Records     repometa.RecordService
	Logs        repometa.LogService
	Health      repometa.HealthService
	RateLimiter repometa.DomainLimiter
	Seen        *bloom.Filter
	Concurrency int
	RetryDelays []time.Duration
}

// Result holds the outcome of a batch operation.
type Result struct {
	Saved      int
	Failed     int
	Skipped    int
	Incomplete int // saved records with at least one missing field
	Bytes      int
}

// ProgressEvent reports progress during a batch operation.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Strategy  string
	Missing   []string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressSkipped
	ProgressFinished
)

// ProgressFunc is a callback for reporting batch progress.
// It is always called from a single goroutine.
type ProgressFunc func(event ProgressEvent)

// itemResult holds the outcome of processing a single URL.
type itemResult struct {
	url      string
	strategy string
	missing  []string
	bytes    int
	skipped  bool
	err      error
}

// Harvest processes urls concurrently. Each URL is fetched with retry,
// stored as a raw page, extracted with a fresh strategy and stored as a
// record. Per-URL failures are counted and reported through progress;
// only context cancellation aborts the run.
func (h *Harvester) Harvest(ctx context.Context, urls []string, progress ProgressFunc) (*Result, error) {
	return run(ctx, len(urls), h.Concurrency, progress, func(ctx context.Context, i int) itemResult {
		return h.harvestURL(ctx, urls[i])
	})
}

func (h *Harvester) harvestURL(ctx context.Context, url string) itemResult {
	result := itemResult{url: url}

	if h.Seen != nil && h.Seen.Seen(url) {
		result.skipped = true
		return result
	}

	host := repometa.Host(url)
	if host == "" {
		result.err = repometa.Errorf(repometa.EINVALID, "invalid URL %q", url)
		h.log(ctx, url, repometa.LogError, result.err.Error())
		return result
	}

	if h.RateLimiter != nil {
		if err := h.RateLimiter.Wait(ctx, host); err != nil {
			result.err = err
			return result
		}
	}

	delays := h.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	onRetry := func(attempt int, err error) {
		h.log(ctx, url, repometa.LogWarn, fmt.Sprintf("fetch attempt %d failed, retrying: %v", attempt, err))
	}
	body, err := FetchWithRetry(ctx, url, h.Fetcher.Fetch, onRetry, delays)
	if err != nil {
		result.err = fmt.Errorf("fetch: %w", err)
		if h.Health != nil {
			_ = h.Health.RecordFailure(ctx, host, err)
		}
		h.log(ctx, url, repometa.LogError, result.err.Error())
		return result
	}
	if h.Health != nil {
		_ = h.Health.RecordSuccess(ctx, host)
	}
	result.bytes = len(body)

	page := &repometa.RawPage{URL: url, Body: body}
	if err := h.Pages.SavePage(ctx, page); err != nil {
		result.err = fmt.Errorf("save page: %w", err)
		return result
	}

	result.strategy, result.missing, result.err = extractAndSave(ctx, h.Engine, h.Records, h.Logs, page)
	return result
}

func (h *Harvester) log(ctx context.Context, url, level, msg string) {
	logEntry(ctx, h.Logs, url, level, msg)
}

// extractAndSave runs the engine over a stored page and persists the
// record, logging every field that could not be extracted.
func extractAndSave(ctx context.Context, engine *repometa.Engine, records repometa.RecordService, logs repometa.LogService, page *repometa.RawPage) (string, []string, error) {
	rec, strategy := engine.ExtractNamed(page.Body, page.URL)

	stored := &repometa.StoredRecord{
		PageID:   page.ID,
		URL:      page.URL,
		Record:   rec,
		Strategy: strategy,
	}
	if err := records.SaveRecord(ctx, stored); err != nil {
		return strategy, nil, fmt.Errorf("save record: %w", err)
	}

	missing := stored.Record.Missing()
	for _, field := range missing {
		logEntry(ctx, logs, page.URL, repometa.LogWarn, fmt.Sprintf("%s not found (strategy %s)", field, strategy))
	}
	return strategy, missing, nil
}

func logEntry(ctx context.Context, logs repometa.LogService, url, level, msg string) {
	if logs == nil {
		return
	}
	_ = logs.CreateLog(ctx, &repometa.LogEntry{URL: url, Level: level, Message: msg})
}

// run processes n items with a bounded worker pool and folds their results,
// reporting progress from the calling goroutine.
func run(ctx context.Context, n, concurrency int, progress ProgressFunc, process func(ctx context.Context, i int) itemResult) (*Result, error) {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	if progress == nil {
		progress = func(ProgressEvent) {}
	}

	progress(ProgressEvent{Type: ProgressStarted, Total: n})

	resultCh := make(chan itemResult, concurrency)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i := range n {
			if gctx.Err() != nil {
				break
			}
			g.Go(func() error {
				resultCh <- process(gctx, i)
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	var completed atomic.Int64
	result := &Result{}
	for r := range resultCh {
		event := ProgressEvent{
			Completed: int(completed.Add(1)),
			Total:     n,
			URL:       r.url,
			Strategy:  r.strategy,
			Missing:   r.missing,
			Error:     r.err,
		}
		switch {
		case r.skipped:
			result.Skipped++
			event.Type = ProgressSkipped
		case r.err != nil:
			result.Failed++
			event.Type = ProgressFailed
		default:
			result.Saved++
			result.Bytes += r.bytes
			if len(r.missing) > 0 {
				result.Incomplete++
			}
			event.Type = ProgressCompleted
		}
		progress(event)
	}

	progress(ProgressEvent{Type: ProgressFinished, Completed: int(completed.Load()), Total: n})

	if err := ctx.Err(); err != nil {
		return result, err
	}
	return result, nil
}
