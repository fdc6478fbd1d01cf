package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/repometa"
)

var _ repometa.SitemapService = (*LoggingSitemapService)(nil)

// LoggingSitemapService logs item discovery. A repository whose sitemaps
// yield no item pages is logged at warn level: it usually means the
// sitemap lists only collections, or the filter is too strict.
type LoggingSitemapService struct {
	next   repometa.SitemapService
	logger *slog.Logger
}

// NewLoggingSitemapService wraps next.
func NewLoggingSitemapService(next repometa.SitemapService, logger *slog.Logger) *LoggingSitemapService {
	return &LoggingSitemapService{next: next, logger: logger}
}

// DiscoverURLs delegates to the wrapped service.
func (s *LoggingSitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *repometa.URLFilter) (urls []string, err error) {
	defer func(begin time.Time) {
		level := slog.LevelInfo
		if err != nil || len(urls) == 0 {
			level = slog.LevelWarn
		}
		attrs := []any{
			"repository", baseURL,
			"items", len(urls),
			"filtered", filter != nil && (len(filter.Include) > 0 || len(filter.Exclude) > 0),
			"duration", time.Since(begin),
		}
		if err != nil {
			attrs = append(attrs, "err", err)
		}
		s.logger.Log(ctx, level, "item discovery", attrs...)
	}(time.Now())
	return s.next.DiscoverURLs(ctx, baseURL, filter)
}
