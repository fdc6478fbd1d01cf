package sqlite

import (
	"context"
	"strings"

	"github.com/fwojciec/repometa"
)

// Compile-time interface verification.
var _ repometa.HealthService = (*HealthService)(nil)

// HealthService implements repometa.HealthService using SQLite.
type HealthService struct {
	db *DB
}

// NewHealthService creates a new HealthService.
func NewHealthService(db *DB) *HealthService {
	return &HealthService{db: db}
}

// RecordSuccess counts a successful fetch from host.
func (s *HealthService) RecordSuccess(ctx context.Context, host string) error {
	host = strings.ToLower(strings.TrimSpace(host))
	if host == "" {
		return repometa.Errorf(repometa.EINVALID, "host required")
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO source_health (host, successes, failures, last_status, last_error, updated_at)
		VALUES (?, 1, 0, ?, '', ?)
		ON CONFLICT(host) DO UPDATE SET
			successes = successes + 1,
			last_status = excluded.last_status,
			last_error = '',
			updated_at = excluded.updated_at
	`, host, repometa.StatusOK, now().Format(timeLayout))

	return err
}

// RecordFailure counts a failed fetch from host and keeps the cause.
func (s *HealthService) RecordFailure(ctx context.Context, host string, cause error) error {
	host = strings.ToLower(strings.TrimSpace(host))
	if host == "" {
		return repometa.Errorf(repometa.EINVALID, "host required")
	}
	msg := ""
	if cause != nil {
		msg = cause.Error()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO source_health (host, successes, failures, last_status, last_error, updated_at)
		VALUES (?, 0, 1, ?, ?, ?)
		ON CONFLICT(host) DO UPDATE SET
			failures = failures + 1,
			last_status = excluded.last_status,
			last_error = excluded.last_error,
			updated_at = excluded.updated_at
	`, host, repometa.StatusFailed, msg, now().Format(timeLayout))

	return err
}

// FindHealth returns the health of every known host, ordered by host.
func (s *HealthService) FindHealth(ctx context.Context) ([]*repometa.SourceHealth, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT host, successes, failures, last_status, last_error, updated_at
		FROM source_health
		ORDER BY host ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var all []*repometa.SourceHealth
	for rows.Next() {
		var h repometa.SourceHealth
		var updatedAt string
		if err := rows.Scan(&h.Host, &h.Successes, &h.Failures, &h.LastStatus, &h.LastError, &updatedAt); err != nil {
			return nil, err
		}
		if h.UpdatedAt, err = parseTime("updated_at", updatedAt); err != nil {
			return nil, err
		}
		all = append(all, &h)
	}

	return all, rows.Err()
}
