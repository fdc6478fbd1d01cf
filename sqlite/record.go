package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/fwojciec/repometa"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ repometa.RecordService = (*RecordService)(nil)

// RecordService implements repometa.RecordService using SQLite.
type RecordService struct {
	db *DB
}

// NewRecordService creates a new RecordService.
func NewRecordService(db *DB) *RecordService {
	return &RecordService{db: db}
}

// SaveRecord stores the record, replacing any record for the same page.
func (s *RecordService) SaveRecord(ctx context.Context, rec *repometa.StoredRecord) error {
	if err := rec.Validate(); err != nil {
		return err
	}

	rec.Record = rec.Record.Normalize()
	rec.ExtractedAt = now()

	err := s.db.QueryRowContext(ctx, `
		INSERT INTO records (id, page_id, url, acronym, institution_name, program_name, pdf_link, strategy, extracted_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(page_id) DO UPDATE SET
			url = excluded.url,
			acronym = excluded.acronym,
			institution_name = excluded.institution_name,
			program_name = excluded.program_name,
			pdf_link = excluded.pdf_link,
			strategy = excluded.strategy,
			extracted_at = excluded.extracted_at
		RETURNING id
	`, uuid.New().String(), rec.PageID, rec.URL, rec.Record.Acronym, rec.Record.InstitutionName,
		rec.Record.ProgramName, rec.Record.PDFLink, rec.Strategy,
		rec.ExtractedAt.Format(timeLayout)).Scan(&rec.ID)

	if err != nil && strings.Contains(err.Error(), "FOREIGN KEY") {
		return repometa.Errorf(repometa.ENOTFOUND, "page %s not found", rec.PageID)
	}
	return err
}

// FindRecordByPageID retrieves the record extracted from a page.
func (s *RecordService) FindRecordByPageID(ctx context.Context, pageID string) (*repometa.StoredRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, page_id, url, acronym, institution_name, program_name, pdf_link, strategy, extracted_at
		FROM records
		WHERE page_id = ?
	`, pageID)

	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repometa.Errorf(repometa.ENOTFOUND, "record not found")
	}
	return rec, err
}

// FindRecords retrieves records matching the filter, ordered by URL.
func (s *RecordService) FindRecords(ctx context.Context, filter repometa.RecordFilter) ([]*repometa.StoredRecord, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, page_id, url, acronym, institution_name, program_name, pdf_link, strategy, extracted_at FROM records WHERE 1=1")

	if filter.Acronym != nil {
		query.WriteString(" AND acronym = ? COLLATE NOCASE")
		args = append(args, *filter.Acronym)
	}
	if filter.MissingOnly {
		query.WriteString(" AND (acronym = ? OR institution_name = ? OR program_name = ? OR pdf_link = ?)")
		args = append(args, repometa.Sentinel, repometa.Sentinel, repometa.Sentinel, repometa.Sentinel)
	}

	query.WriteString(" ORDER BY url ASC")
	clause, limitArgs := limitClause(filter.Limit, filter.Offset)
	query.WriteString(clause)
	args = append(args, limitArgs...)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []*repometa.StoredRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}

	return recs, rows.Err()
}

func scanRecord(row scanner) (*repometa.StoredRecord, error) {
	var rec repometa.StoredRecord
	var extractedAt string

	if err := row.Scan(&rec.ID, &rec.PageID, &rec.URL, &rec.Record.Acronym, &rec.Record.InstitutionName,
		&rec.Record.ProgramName, &rec.Record.PDFLink, &rec.Strategy, &extractedAt); err != nil {
		return nil, err
	}

	var err error
	rec.ExtractedAt, err = parseTime("extracted_at", extractedAt)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}
