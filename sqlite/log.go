package sqlite

import (
	"context"

	"github.com/fwojciec/repometa"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ repometa.LogService = (*LogService)(nil)

// LogService implements repometa.LogService using SQLite.
type LogService struct {
	db *DB
}

// NewLogService creates a new LogService.
func NewLogService(db *DB) *LogService {
	return &LogService{db: db}
}

// CreateLog stores a diagnostic entry.
func (s *LogService) CreateLog(ctx context.Context, entry *repometa.LogEntry) error {
	switch {
	case entry.URL == "":
		return repometa.Errorf(repometa.EINVALID, "log URL required")
	case entry.Message == "":
		return repometa.Errorf(repometa.EINVALID, "log message required")
	}
	if entry.Level == "" {
		entry.Level = repometa.LogInfo
	}

	entry.ID = uuid.New().String()
	entry.CreatedAt = now()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO extraction_logs (id, url, level, message, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, entry.ID, entry.URL, entry.Level, entry.Message, entry.CreatedAt.Format(timeLayout))

	return err
}

// FindLogs returns the entries for url in insertion order. An empty url
// returns entries for every URL. A limit of zero means no limit.
func (s *LogService) FindLogs(ctx context.Context, url string, limit int) ([]*repometa.LogEntry, error) {
	query := "SELECT id, url, level, message, created_at FROM extraction_logs WHERE (? = '' OR url = ?) ORDER BY rowid ASC"
	args := []any{url, url}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*repometa.LogEntry
	for rows.Next() {
		var entry repometa.LogEntry
		var createdAt string
		if err := rows.Scan(&entry.ID, &entry.URL, &entry.Level, &entry.Message, &createdAt); err != nil {
			return nil, err
		}
		if entry.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
			return nil, err
		}
		entries = append(entries, &entry)
	}

	return entries, rows.Err()
}
