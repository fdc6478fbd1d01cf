package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/fwojciec/repometa/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db := sqlite.NewDB(":memory:")
	require.NoError(t, db.Open())
	t.Cleanup(func() { db.Close() })
	return db
}

func TestDB_Open(t *testing.T) {
	t.Parallel()

	t.Run("creates every table", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		ctx := context.Background()

		for _, table := range []string{"raw_pages", "records", "extraction_logs", "source_health"} {
			var count int
			require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&count), table)
			assert.Zero(t, count, table)
		}
	})

	t.Run("reopening keeps data and schema version", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		path := filepath.Join(t.TempDir(), "repometa.db")

		db := sqlite.NewDB(path)
		require.NoError(t, db.Open())
		first, err := db.SchemaVersion(ctx)
		require.NoError(t, err)
		require.Positive(t, first)
		_, err = db.ExecContext(ctx, `INSERT INTO source_health (host, updated_at) VALUES ('repo.ufx.br', '2026-01-01T00:00:00Z')`)
		require.NoError(t, err)
		require.NoError(t, db.Close())

		db = sqlite.NewDB(path)
		require.NoError(t, db.Open())
		defer db.Close()

		again, err := db.SchemaVersion(ctx)
		require.NoError(t, err)
		assert.Equal(t, first, again)

		var hosts int
		require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM source_health").Scan(&hosts))
		assert.Equal(t, 1, hosts)
	})

	t.Run("uses WAL for file databases", func(t *testing.T) {
		t.Parallel()

		db := sqlite.NewDB(filepath.Join(t.TempDir(), "repometa.db"))
		require.NoError(t, db.Open())
		defer db.Close()

		var mode string
		require.NoError(t, db.QueryRowContext(context.Background(), "PRAGMA journal_mode").Scan(&mode))
		assert.Equal(t, "wal", mode)
	})

	t.Run("enforces foreign keys", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		_, err := db.ExecContext(context.Background(), `
			INSERT INTO records (id, page_id, url, extracted_at)
			VALUES ('r1', 'no-such-page', 'https://repo.ufx.br/handle/1/1', '2026-01-01T00:00:00Z')`)

		require.Error(t, err)
	})

	t.Run("fails for an unreachable path", func(t *testing.T) {
		t.Parallel()

		require.Error(t, sqlite.NewDB("/nonexistent/dir/repometa.db").Open())
	})

	t.Run("close without open", func(t *testing.T) {
		t.Parallel()

		assert.NoError(t, sqlite.NewDB(":memory:").Close())
	})
}
