package mock

import (
	"context"

	"github.com/fwojciec/repometa"
)

var (
	_ repometa.RecordService = (*RecordService)(nil)
	_ repometa.LogService    = (*LogService)(nil)
	_ repometa.HealthService = (*HealthService)(nil)
)

// RecordService is a mock implementation of repometa.RecordService.
type RecordService struct {
	SaveRecordFn         func(ctx context.Context, rec *repometa.StoredRecord) error
	FindRecordByPageIDFn func(ctx context.Context, pageID string) (*repometa.StoredRecord, error)
	FindRecordsFn        func(ctx context.Context, filter repometa.RecordFilter) ([]*repometa.StoredRecord, error)
}

func (s *RecordService) SaveRecord(ctx context.Context, rec *repometa.StoredRecord) error {
	return s.SaveRecordFn(ctx, rec)
}

func (s *RecordService) FindRecordByPageID(ctx context.Context, pageID string) (*repometa.StoredRecord, error) {
	return s.FindRecordByPageIDFn(ctx, pageID)
}

func (s *RecordService) FindRecords(ctx context.Context, filter repometa.RecordFilter) ([]*repometa.StoredRecord, error) {
	return s.FindRecordsFn(ctx, filter)
}

// LogService is a mock implementation of repometa.LogService.
type LogService struct {
	CreateLogFn func(ctx context.Context, entry *repometa.LogEntry) error
	FindLogsFn  func(ctx context.Context, url string, limit int) ([]*repometa.LogEntry, error)
}

func (s *LogService) CreateLog(ctx context.Context, entry *repometa.LogEntry) error {
	return s.CreateLogFn(ctx, entry)
}

func (s *LogService) FindLogs(ctx context.Context, url string, limit int) ([]*repometa.LogEntry, error) {
	return s.FindLogsFn(ctx, url, limit)
}

// HealthService is a mock implementation of repometa.HealthService.
type HealthService struct {
	RecordSuccessFn func(ctx context.Context, host string) error
	RecordFailureFn func(ctx context.Context, host string, cause error) error
	FindHealthFn    func(ctx context.Context) ([]*repometa.SourceHealth, error)
}

func (s *HealthService) RecordSuccess(ctx context.Context, host string) error {
	return s.RecordSuccessFn(ctx, host)
}

func (s *HealthService) RecordFailure(ctx context.Context, host string, cause error) error {
	return s.RecordFailureFn(ctx, host, cause)
}

func (s *HealthService) FindHealth(ctx context.Context) ([]*repometa.SourceHealth, error) {
	return s.FindHealthFn(ctx)
}
