package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/sitesearch"
)

// Ensure LoggingCorpusWriter implements sitesearch.CorpusWriter.
var _ sitesearch.CorpusWriter = (*LoggingCorpusWriter)(nil)

// LoggingCorpusWriter wraps a CorpusWriter with logging.
type LoggingCorpusWriter struct {
	next   sitesearch.CorpusWriter
	logger *slog.Logger
}

// NewLoggingCorpusWriter creates a new LoggingCorpusWriter.
func NewLoggingCorpusWriter(next sitesearch.CorpusWriter, logger *slog.Logger) *LoggingCorpusWriter {
	return &LoggingCorpusWriter{next: next, logger: logger}
}

// WriteCorpus delegates to the wrapped writer and logs the operation.
func (w *LoggingCorpusWriter) WriteCorpus(ctx context.Context, records []*sitesearch.Record) (err error) {
	defer func(begin time.Time) {
		w.logger.Info("write corpus",
			"count", len(records),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return w.next.WriteCorpus(ctx, records)
}

// Ensure LoggingMetadataWriter implements sitesearch.MetadataWriter.
var _ sitesearch.MetadataWriter = (*LoggingMetadataWriter)(nil)

// LoggingMetadataWriter wraps a MetadataWriter with logging.
type LoggingMetadataWriter struct {
	next   sitesearch.MetadataWriter
	logger *slog.Logger
}

// NewLoggingMetadataWriter creates a new LoggingMetadataWriter.
func NewLoggingMetadataWriter(next sitesearch.MetadataWriter, logger *slog.Logger) *LoggingMetadataWriter {
	return &LoggingMetadataWriter{next: next, logger: logger}
}

// WriteMetadata delegates to the wrapped writer and logs the operation.
func (w *LoggingMetadataWriter) WriteMetadata(ctx context.Context, metadata map[string]sitesearch.PageMetadata) (err error) {
	defer func(begin time.Time) {
		w.logger.Info("write metadata",
			"count", len(metadata),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return w.next.WriteMetadata(ctx, metadata)
}
