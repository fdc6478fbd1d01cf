package repometa

import (
	"context"
	"time"
)

// StoredRecord is a Record persisted for a raw page.
type StoredRecord struct {
	ID          string    `json:"id"`
	PageID      string    `json:"pageId"`
	URL         string    `json:"url"`
	Record      Record    `json:"record"`
	Strategy    string    `json:"strategy"`
	ExtractedAt time.Time `json:"extractedAt"`
}

// Validate returns an error if the stored record contains invalid fields.
func (r *StoredRecord) Validate() error {
	if r.PageID == "" {
		return Errorf(EINVALID, "record page ID required")
	}
	if r.URL == "" {
		return Errorf(EINVALID, "record URL required")
	}
	return nil
}

// RecordService represents a service for managing extracted records.
type RecordService interface {
	// SaveRecord stores the record, replacing any record for the same page.
	// The record fields are normalized before storage.
	SaveRecord(ctx context.Context, rec *StoredRecord) error

	// FindRecordByPageID retrieves the record extracted from a page.
	// Returns ENOTFOUND if no record exists.
	FindRecordByPageID(ctx context.Context, pageID string) (*StoredRecord, error)

	// FindRecords retrieves records matching the filter.
	FindRecords(ctx context.Context, filter RecordFilter) ([]*StoredRecord, error)
}

// RecordFilter represents a filter for FindRecords.
type RecordFilter struct {
	Acronym *string `json:"acronym"`

	// MissingOnly restricts results to records with at least one sentinel field.
	MissingOnly bool `json:"missingOnly"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// Log levels stored with LogEntry.
const (
	LogInfo  = "info"
	LogWarn  = "warn"
	LogError = "error"
)

// LogEntry is a persisted diagnostic message about one source URL.
type LogEntry struct {
	ID        string    `json:"id"`
	URL       string    `json:"url"`
	Level     string    `json:"level"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// LogService stores extraction diagnostics.
type LogService interface {
	CreateLog(ctx context.Context, entry *LogEntry) error
	FindLogs(ctx context.Context, url string, limit int) ([]*LogEntry, error)
}

// SourceHealth summarizes fetch outcomes for one repository host.
type SourceHealth struct {
	Host       string    `json:"host"`
	Successes  int       `json:"successes"`
	Failures   int       `json:"failures"`
	LastStatus string    `json:"lastStatus"`
	LastError  string    `json:"lastError"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Health statuses.
const (
	StatusOK     = "ok"
	StatusFailed = "failed"
)

// HealthService tracks per-host fetch health.
type HealthService interface {
	RecordSuccess(ctx context.Context, host string) error
	RecordFailure(ctx context.Context, host string, cause error) error
	FindHealth(ctx context.Context) ([]*SourceHealth, error)
}
