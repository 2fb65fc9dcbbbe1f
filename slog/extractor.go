// Package slog provides logging decorators for sitesearch services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/sitesearch"
)

// Ensure LoggingExtractor implements sitesearch.Extractor.
var _ sitesearch.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with debug logging.
type LoggingExtractor struct {
	next   sitesearch.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next sitesearch.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs the operation.
func (e *LoggingExtractor) Extract(html string) (ext *sitesearch.Extraction, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"bytes", len(html),
			"duration", time.Since(begin),
		}
		if ext != nil {
			attrs = append(attrs,
				"categories", len(ext.Categories),
				"content_bytes", len(ext.Content),
			)
		}
		attrs = append(attrs, "err", err)
		e.logger.Debug("extract", attrs...)
	}(time.Now())
	return e.next.Extract(html)
}

// Ensure LoggingPageReader implements sitesearch.PageReader.
var _ sitesearch.PageReader = (*LoggingPageReader)(nil)

// LoggingPageReader wraps a PageReader with debug logging.
type LoggingPageReader struct {
	next   sitesearch.PageReader
	logger *slog.Logger
}

// NewLoggingPageReader creates a new LoggingPageReader.
func NewLoggingPageReader(next sitesearch.PageReader, logger *slog.Logger) *LoggingPageReader {
	return &LoggingPageReader{next: next, logger: logger}
}

// ReadPage delegates to the wrapped reader and logs the operation.
func (r *LoggingPageReader) ReadPage(ctx context.Context, path string) (html string, err error) {
	defer func(begin time.Time) {
		r.logger.Debug("read page",
			"path", path,
			"bytes", len(html),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return r.next.ReadPage(ctx, path)
}
