package slog

import (
	"context"
	"log/slog"
	"net/url"
	"time"

	"github.com/fwojciec/repometa"
)

var _ repometa.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher logs every page fetch. Successful fetches are logged at
// debug level and failures at info, since the harvest progress output
// already reports failed pages to the user.
type LoggingFetcher struct {
	next   repometa.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher wraps next.
func NewLoggingFetcher(next repometa.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher.
func (f *LoggingFetcher) Fetch(ctx context.Context, rawURL string) (body string, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"host", hostOf(rawURL),
			"url", rawURL,
			"bytes", len(body),
			"duration", time.Since(begin),
		}
		if err != nil {
			f.logger.Info("fetch failed", append(attrs, "err", err)...)
			return
		}
		f.logger.Debug("fetch", attrs...)
	}(time.Now())
	return f.next.Fetch(ctx, rawURL)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}

func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Hostname()
}
