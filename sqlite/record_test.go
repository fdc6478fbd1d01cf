package sqlite_test

import (
	"context"
	"testing"

	"github.com/fwojciec/repometa"
	"github.com/fwojciec/repometa/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordService_SaveRecord(t *testing.T) {
	t.Parallel()

	t.Run("normalizes and upserts by page", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewRecordService(db)
		ctx := context.Background()
		page := savePage(t, db, "https://repo.example.br/handle/1/2", "<html></html>")

		rec := &repometa.StoredRecord{
			PageID:   page.ID,
			URL:      page.URL,
			Record:   repometa.Record{Acronym: "UFX", InstitutionName: "Universidade Federal X"},
			Strategy: "classic",
		}
		require.NoError(t, svc.SaveRecord(ctx, rec))
		assert.Equal(t, repometa.Sentinel, rec.Record.ProgramName)

		update := &repometa.StoredRecord{
			PageID:   page.ID,
			URL:      page.URL,
			Record:   repometa.Record{Acronym: "UFX", InstitutionName: "Universidade Federal X", ProgramName: "Direito", PDFLink: "https://repo.example.br/a.pdf"},
			Strategy: "classic:ufx",
		}
		require.NoError(t, svc.SaveRecord(ctx, update))
		assert.Equal(t, rec.ID, update.ID)

		found, err := svc.FindRecordByPageID(ctx, page.ID)
		require.NoError(t, err)
		assert.Equal(t, "Direito", found.Record.ProgramName)
		assert.Equal(t, "classic:ufx", found.Strategy)
	})

	t.Run("unknown page", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)

		err := sqlite.NewRecordService(db).SaveRecord(context.Background(), &repometa.StoredRecord{PageID: "missing", URL: "https://x"})

		assert.Equal(t, repometa.ENOTFOUND, repometa.ErrorCode(err))
	})

	t.Run("requires page ID", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)

		err := sqlite.NewRecordService(db).SaveRecord(context.Background(), &repometa.StoredRecord{URL: "https://x"})

		assert.Equal(t, repometa.EINVALID, repometa.ErrorCode(err))
	})
}

func TestRecordService_FindRecords(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	svc := sqlite.NewRecordService(db)
	ctx := context.Background()

	for _, tc := range []struct {
		url string
		rec repometa.Record
	}{
		{"https://a.example.br/handle/1/1", repometa.Record{Acronym: "UFA", InstitutionName: "A", ProgramName: "Direito", PDFLink: "https://a.example.br/1.pdf"}},
		{"https://a.example.br/handle/1/2", repometa.Record{Acronym: "UFA", InstitutionName: "A", ProgramName: "Física"}},
		{"https://b.example.br/handle/1/1", repometa.Record{Acronym: "UFB", InstitutionName: "B", ProgramName: "Letras", PDFLink: "https://b.example.br/1.pdf"}},
	} {
		page := savePage(t, db, tc.url, "<html></html>")
		require.NoError(t, svc.SaveRecord(ctx, &repometa.StoredRecord{PageID: page.ID, URL: tc.url, Record: tc.rec}))
	}

	acronym := "ufa"
	recs, err := svc.FindRecords(ctx, repometa.RecordFilter{Acronym: &acronym})
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "https://a.example.br/handle/1/1", recs[0].URL)

	missing, err := svc.FindRecords(ctx, repometa.RecordFilter{MissingOnly: true})
	require.NoError(t, err)
	require.Len(t, missing, 1)
	assert.Equal(t, "Física", missing[0].Record.ProgramName)

	limited, err := svc.FindRecords(ctx, repometa.RecordFilter{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}
