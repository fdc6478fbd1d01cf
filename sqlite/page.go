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
var _ repometa.PageService = (*PageService)(nil)

// PageService implements repometa.PageService using SQLite.
type PageService struct {
	db *DB
}

// NewPageService creates a new PageService.
func NewPageService(db *DB) *PageService {
	return &PageService{db: db}
}

// SavePage stores the page, replacing the body of any page with the same
// URL. The existing ID is kept on replacement so records stay attached.
func (s *PageService) SavePage(ctx context.Context, page *repometa.RawPage) error {
	if err := page.Validate(); err != nil {
		return err
	}

	page.ContentHash = hashContent(page.Body)
	page.FetchedAt = now()

	err := s.db.QueryRowContext(ctx, `
		INSERT INTO raw_pages (id, url, host, body, content_hash, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(url) DO UPDATE SET
			body = excluded.body,
			content_hash = excluded.content_hash,
			fetched_at = excluded.fetched_at
		RETURNING id
	`, uuid.New().String(), page.URL, repometa.Host(page.URL), page.Body, page.ContentHash,
		page.FetchedAt.Format(timeLayout)).Scan(&page.ID)

	return err
}

// FindPageByID retrieves a page by ID.
func (s *PageService) FindPageByID(ctx context.Context, id string) (*repometa.RawPage, error) {
	return s.findOne(ctx, "id", id)
}

// FindPageByURL retrieves a page by its source URL.
func (s *PageService) FindPageByURL(ctx context.Context, url string) (*repometa.RawPage, error) {
	return s.findOne(ctx, "url", url)
}

func (s *PageService) findOne(ctx context.Context, column, value string) (*repometa.RawPage, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, url, body, content_hash, fetched_at
		FROM raw_pages
		WHERE `+column+` = ?
	`, value)

	page, err := scanPage(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repometa.Errorf(repometa.ENOTFOUND, "page not found")
	}
	return page, err
}

// FindPages retrieves pages matching the filter, oldest fetch first.
func (s *PageService) FindPages(ctx context.Context, filter repometa.PageFilter) ([]*repometa.RawPage, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, url, body, content_hash, fetched_at FROM raw_pages WHERE 1=1")

	if filter.Host != nil {
		query.WriteString(" AND host = ?")
		args = append(args, strings.ToLower(*filter.Host))
	}

	query.WriteString(" ORDER BY fetched_at ASC, url ASC")
	clause, limitArgs := limitClause(filter.Limit, filter.Offset)
	query.WriteString(clause)
	args = append(args, limitArgs...)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pages []*repometa.RawPage
	for rows.Next() {
		page, err := scanPage(rows)
		if err != nil {
			return nil, err
		}
		pages = append(pages, page)
	}

	return pages, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPage(row scanner) (*repometa.RawPage, error) {
	var page repometa.RawPage
	var fetchedAt string

	if err := row.Scan(&page.ID, &page.URL, &page.Body, &page.ContentHash, &fetchedAt); err != nil {
		return nil, err
	}

	var err error
	page.FetchedAt, err = parseTime("fetched_at", fetchedAt)
	if err != nil {
		return nil, err
	}
	return &page, nil
}
