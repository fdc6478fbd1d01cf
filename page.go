package repometa

import (
	"context"
	"time"
)

// RawPage is a downloaded repository page kept for later (re)extraction.
type RawPage struct {
	ID          string    `json:"id"`
	URL         string    `json:"url"`
	Body        string    `json:"body"`
	ContentHash string    `json:"contentHash"`
	FetchedAt   time.Time `json:"fetchedAt"`
}

// Validate returns an error if the page contains invalid fields.
func (p *RawPage) Validate() error {
	if p.URL == "" {
		return Errorf(EINVALID, "page URL required")
	}
	return nil
}

// PageService represents a service for managing raw pages.
type PageService interface {
	// SavePage stores the page, replacing any page with the same URL.
	// ID, ContentHash and FetchedAt are set on the passed page.
	SavePage(ctx context.Context, page *RawPage) error

	// FindPageByID retrieves a page by ID.
	// Returns ENOTFOUND if the page does not exist.
	FindPageByID(ctx context.Context, id string) (*RawPage, error)

	// FindPageByURL retrieves a page by its source URL.
	// Returns ENOTFOUND if the page does not exist.
	FindPageByURL(ctx context.Context, url string) (*RawPage, error)

	// FindPages retrieves pages matching the filter.
	FindPages(ctx context.Context, filter PageFilter) ([]*RawPage, error)
}

// PageFilter represents a filter for FindPages.
type PageFilter struct {
	Host *string `json:"host"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
