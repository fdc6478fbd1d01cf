package batch_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/fwojciec/repometa"
	"github.com/fwojciec/repometa/batch"
	"github.com/fwojciec/repometa/bloom"
	"github.com/fwojciec/repometa/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// store is an in-memory backing for the page, record, log and health mocks.
type store struct {
	mu        sync.Mutex
	pages     map[string]*repometa.RawPage
	records   map[string]*repometa.StoredRecord
	logs      []*repometa.LogEntry
	successes map[string]int
	failures  map[string]int
}

func newStore() *store {
	return &store{
		pages:     make(map[string]*repometa.RawPage),
		records:   make(map[string]*repometa.StoredRecord),
		successes: make(map[string]int),
		failures:  make(map[string]int),
	}
}

func (s *store) pageService() *mock.PageService {
	return &mock.PageService{
		SavePageFn: func(_ context.Context, page *repometa.RawPage) error {
			s.mu.Lock()
			defer s.mu.Unlock()
			page.ID = "page:" + page.URL
			s.pages[page.URL] = page
			return nil
		},
		FindPagesFn: func(_ context.Context, _ repometa.PageFilter) ([]*repometa.RawPage, error) {
			s.mu.Lock()
			defer s.mu.Unlock()
			var pages []*repometa.RawPage
			for _, p := range s.pages {
				pages = append(pages, p)
			}
			return pages, nil
		},
	}
}

func (s *store) recordService() *mock.RecordService {
	return &mock.RecordService{
		SaveRecordFn: func(_ context.Context, rec *repometa.StoredRecord) error {
			s.mu.Lock()
			defer s.mu.Unlock()
			rec.Record = rec.Record.Normalize()
			s.records[rec.PageID] = rec
			return nil
		},
	}
}

func (s *store) logService() *mock.LogService {
	return &mock.LogService{
		CreateLogFn: func(_ context.Context, entry *repometa.LogEntry) error {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.logs = append(s.logs, entry)
			return nil
		},
	}
}

func (s *store) healthService() *mock.HealthService {
	return &mock.HealthService{
		RecordSuccessFn: func(_ context.Context, host string) error {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.successes[host]++
			return nil
		},
		RecordFailureFn: func(_ context.Context, host string, _ error) error {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.failures[host]++
			return nil
		},
	}
}

// fixedEngine returns an engine whose strategy is named name and yields rec.
func fixedEngine(name string, rec repometa.Record) *repometa.Engine {
	return repometa.NewEngine(&mock.Resolver{
		ResolveFn: func(_, _ string) repometa.Extractor {
			return &mock.Extractor{
				NameFn:    func() string { return name },
				ExtractFn: func(_, _ string) repometa.Record { return rec.Normalize() },
			}
		},
	})
}

func newHarvester(s *store, fetch func(ctx context.Context, url string) (string, error), engine *repometa.Engine) *batch.Harvester {
	return &batch.Harvester{
		Fetcher:     &mock.Fetcher{FetchFn: fetch},
		Engine:      engine,
		Pages:       s.pageService(),
		Records:     s.recordService(),
		Logs:        s.logService(),
		Health:      s.healthService(),
		Concurrency: 2,
		RetryDelays: []time.Duration{0, 0},
	}
}

func TestHarvester_Harvest(t *testing.T) {
	t.Parallel()

	full := repometa.Record{Acronym: "UFX", InstitutionName: "Universidade Federal X", ProgramName: "Direito", PDFLink: "https://repo.ufx.br/a.pdf"}

	t.Run("stores one page and one record per URL", func(t *testing.T) {
		t.Parallel()

		s := newStore()
		h := newHarvester(s, func(_ context.Context, url string) (string, error) {
			return "<html>" + url + "</html>", nil
		}, fixedEngine("classic:ufx", full))

		urls := []string{"https://repo.ufx.br/handle/1/1", "https://repo.ufx.br/handle/1/2", "https://repo.ufx.br/handle/1/3"}
		result, err := h.Harvest(context.Background(), urls, nil)

		require.NoError(t, err)
		assert.Equal(t, 3, result.Saved)
		assert.Equal(t, 0, result.Failed)
		assert.Equal(t, 0, result.Incomplete)
		assert.Len(t, s.pages, 3)
		require.Len(t, s.records, 3)
		rec := s.records["page:https://repo.ufx.br/handle/1/2"]
		require.NotNil(t, rec)
		assert.Equal(t, "classic:ufx", rec.Strategy)
		assert.Equal(t, "Direito", rec.Record.ProgramName)
		assert.Equal(t, 3, s.successes["repo.ufx.br"])
		assert.Empty(t, s.logs)
	})

	t.Run("logs missing fields", func(t *testing.T) {
		t.Parallel()

		s := newStore()
		partial := repometa.Record{Acronym: "UFX", InstitutionName: "Universidade Federal X"}
		h := newHarvester(s, func(_ context.Context, _ string) (string, error) {
			return "<html></html>", nil
		}, fixedEngine("generic", partial))

		result, err := h.Harvest(context.Background(), []string{"https://repo.ufx.br/handle/1/1"}, nil)

		require.NoError(t, err)
		assert.Equal(t, 1, result.Saved)
		assert.Equal(t, 1, result.Incomplete)
		require.Len(t, s.logs, 2)
		assert.Equal(t, repometa.LogWarn, s.logs[0].Level)
		assert.Contains(t, s.logs[0].Message, "program_name")
		assert.Contains(t, s.logs[1].Message, "pdf_link")
	})

	t.Run("retries then records failure", func(t *testing.T) {
		t.Parallel()

		s := newStore()
		var mu sync.Mutex
		attempts := 0
		h := newHarvester(s, func(_ context.Context, _ string) (string, error) {
			mu.Lock()
			defer mu.Unlock()
			attempts++
			return "", errors.New("HTTP 503")
		}, fixedEngine("classic", full))

		var events []batch.ProgressEvent
		result, err := h.Harvest(context.Background(), []string{"https://down.example.br/handle/1/1"}, func(e batch.ProgressEvent) {
			events = append(events, e)
		})

		require.NoError(t, err)
		assert.Equal(t, 0, result.Saved)
		assert.Equal(t, 1, result.Failed)
		assert.Equal(t, 3, attempts)
		assert.Equal(t, 1, s.failures["down.example.br"])
		assert.Empty(t, s.pages)
		require.Len(t, s.logs, 3)
		assert.Equal(t, repometa.LogWarn, s.logs[0].Level)
		assert.Contains(t, s.logs[0].Message, "attempt 1")
		assert.Equal(t, repometa.LogWarn, s.logs[1].Level)
		assert.Equal(t, repometa.LogError, s.logs[2].Level)

		require.Len(t, events, 3)
		assert.Equal(t, batch.ProgressStarted, events[0].Type)
		assert.Equal(t, batch.ProgressFailed, events[1].Type)
		assert.ErrorContains(t, events[1].Error, "HTTP 503")
		assert.Equal(t, batch.ProgressFinished, events[2].Type)
	})

	t.Run("recovers on retry", func(t *testing.T) {
		t.Parallel()

		s := newStore()
		var mu sync.Mutex
		attempts := 0
		h := newHarvester(s, func(_ context.Context, _ string) (string, error) {
			mu.Lock()
			defer mu.Unlock()
			attempts++
			if attempts == 1 {
				return "", errors.New("timeout")
			}
			return "<html></html>", nil
		}, fixedEngine("classic", full))

		result, err := h.Harvest(context.Background(), []string{"https://repo.ufx.br/handle/1/1"}, nil)

		require.NoError(t, err)
		assert.Equal(t, 1, result.Saved)
		assert.Equal(t, 2, attempts)
	})

	t.Run("does not retry withdrawn items", func(t *testing.T) {
		t.Parallel()

		s := newStore()
		var mu sync.Mutex
		attempts := 0
		h := newHarvester(s, func(_ context.Context, url string) (string, error) {
			mu.Lock()
			defer mu.Unlock()
			attempts++
			return "", repometa.Errorf(repometa.ENOTFOUND, "HTTP 404 for %s", url)
		}, fixedEngine("classic", full))

		result, err := h.Harvest(context.Background(), []string{"https://repo.ufx.br/handle/1/404"}, nil)

		require.NoError(t, err)
		assert.Equal(t, 1, result.Failed)
		assert.Equal(t, 1, attempts)
		require.Len(t, s.logs, 1)
		assert.Equal(t, repometa.LogError, s.logs[0].Level)
	})

	t.Run("skips URLs already seen", func(t *testing.T) {
		t.Parallel()

		s := newStore()
		h := newHarvester(s, func(_ context.Context, _ string) (string, error) {
			return "<html></html>", nil
		}, fixedEngine("classic", full))
		h.Concurrency = 1
		h.Seen = bloom.NewFilter(100, 0.01)

		urls := []string{"https://repo.ufx.br/handle/1/1", "https://repo.ufx.br/handle/1/1#files", "https://repo.ufx.br/handle/1/2"}
		result, err := h.Harvest(context.Background(), urls, nil)

		require.NoError(t, err)
		assert.Equal(t, 2, result.Saved)
		assert.Equal(t, 1, result.Skipped)
	})

	t.Run("rejects URL without host", func(t *testing.T) {
		t.Parallel()

		s := newStore()
		h := newHarvester(s, func(_ context.Context, _ string) (string, error) {
			t.Fatal("fetch should not be called")
			return "", nil
		}, fixedEngine("classic", full))

		result, err := h.Harvest(context.Background(), []string{"not a url"}, nil)

		require.NoError(t, err)
		assert.Equal(t, 1, result.Failed)
	})

	t.Run("waits on rate limiter per host", func(t *testing.T) {
		t.Parallel()

		s := newStore()
		var mu sync.Mutex
		var hosts []string
		h := newHarvester(s, func(_ context.Context, _ string) (string, error) {
			return "<html></html>", nil
		}, fixedEngine("classic", full))
		h.RateLimiter = &mock.DomainLimiter{
			WaitFn: func(_ context.Context, domain string) error {
				mu.Lock()
				defer mu.Unlock()
				hosts = append(hosts, domain)
				return nil
			},
		}

		_, err := h.Harvest(context.Background(), []string{"https://repo.ufx.br/handle/1/1"}, nil)

		require.NoError(t, err)
		assert.Equal(t, []string{"repo.ufx.br"}, hosts)
	})

	t.Run("returns context error when canceled", func(t *testing.T) {
		t.Parallel()

		s := newStore()
		h := newHarvester(s, func(ctx context.Context, _ string) (string, error) {
			return "", ctx.Err()
		}, fixedEngine("classic", full))

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := h.Harvest(ctx, []string{"https://repo.ufx.br/handle/1/1"}, nil)

		require.ErrorIs(t, err, context.Canceled)
	})
}
