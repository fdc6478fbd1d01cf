package slog

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/fwojciec/repometa"
)

var (
	_ repometa.Resolver  = (*LoggingResolver)(nil)
	_ repometa.Extractor = (*LoggingExtractor)(nil)
)

// LoggingResolver wraps a Resolver, logging the selected strategy and
// wrapping it in a LoggingExtractor.
type LoggingResolver struct {
	next   repometa.Resolver
	logger *slog.Logger
}

// NewLoggingResolver creates a new LoggingResolver.
func NewLoggingResolver(next repometa.Resolver, logger *slog.Logger) *LoggingResolver {
	return &LoggingResolver{next: next, logger: logger}
}

// Resolve delegates to the wrapped resolver and logs the strategy chosen.
func (r *LoggingResolver) Resolve(sourceURL string, body string) repometa.Extractor {
	begin := time.Now()
	ext := r.next.Resolve(sourceURL, body)
	r.logger.Debug("strategy resolution",
		"url", sourceURL,
		"strategy", ext.Name(),
		"sniffed", body != "",
		"duration", time.Since(begin),
	)
	return NewLoggingExtractor(ext, r.logger)
}

// LoggingExtractor wraps an Extractor, logging which fields could not be
// extracted.
type LoggingExtractor struct {
	next   repometa.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next repometa.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs the outcome.
func (e *LoggingExtractor) Extract(body string, sourceURL string) (rec repometa.Record) {
	defer func(begin time.Time) {
		missing := rec.Missing()
		level := slog.LevelInfo
		if len(missing) > 0 {
			level = slog.LevelWarn
		}
		e.logger.Log(context.Background(), level, "extract",
			"url", sourceURL,
			"strategy", e.next.Name(),
			"missing", strings.Join(missing, ","),
			"duration", time.Since(begin),
		)
	}(time.Now())
	return e.next.Extract(body, sourceURL)
}

// Name returns the wrapped extractor's name.
func (e *LoggingExtractor) Name() string {
	return e.next.Name()
}
