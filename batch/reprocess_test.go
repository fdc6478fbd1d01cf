package batch_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fwojciec/repometa"
	"github.com/fwojciec/repometa/batch"
	"github.com/fwojciec/repometa/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReprocessor_Reprocess(t *testing.T) {
	t.Parallel()

	t.Run("re-extracts stored pages without fetching", func(t *testing.T) {
		t.Parallel()

		s := newStore()
		for _, u := range []string{"https://repo.ufx.br/handle/1/1", "https://repo.ufx.br/handle/1/2"} {
			s.pages[u] = &repometa.RawPage{ID: "page:" + u, URL: u, Body: "<html></html>"}
		}

		r := &batch.Reprocessor{
			Engine:  fixedEngine("spa:ufx", repometa.Record{Acronym: "UFX", InstitutionName: "X", ProgramName: "Física", PDFLink: "https://x/a.pdf"}),
			Pages:   s.pageService(),
			Records: s.recordService(),
			Logs:    s.logService(),
		}

		result, err := r.Reprocess(context.Background(), repometa.PageFilter{}, nil)

		require.NoError(t, err)
		assert.Equal(t, 2, result.Saved)
		require.Len(t, s.records, 2)
		for _, rec := range s.records {
			assert.Equal(t, "spa:ufx", rec.Strategy)
			assert.Equal(t, "Física", rec.Record.ProgramName)
		}
	})

	t.Run("counts record save failures", func(t *testing.T) {
		t.Parallel()

		s := newStore()
		s.pages["https://repo.ufx.br/handle/1/1"] = &repometa.RawPage{ID: "p1", URL: "https://repo.ufx.br/handle/1/1"}

		r := &batch.Reprocessor{
			Engine: fixedEngine("generic", repometa.Record{}),
			Pages:  s.pageService(),
			Records: &mock.RecordService{
				SaveRecordFn: func(_ context.Context, _ *repometa.StoredRecord) error {
					return errors.New("disk full")
				},
			},
		}

		result, err := r.Reprocess(context.Background(), repometa.PageFilter{}, nil)

		require.NoError(t, err)
		assert.Equal(t, 1, result.Failed)
	})

	t.Run("propagates page lookup errors", func(t *testing.T) {
		t.Parallel()

		r := &batch.Reprocessor{
			Engine: fixedEngine("generic", repometa.Record{}),
			Pages: &mock.PageService{
				FindPagesFn: func(_ context.Context, _ repometa.PageFilter) ([]*repometa.RawPage, error) {
					return nil, errors.New("db closed")
				},
			},
		}

		_, err := r.Reprocess(context.Background(), repometa.PageFilter{}, nil)

		require.ErrorContains(t, err, "db closed")
	})
}
