package mock

import (
	"context"

	"github.com/fwojciec/sitesearch"
)

var (
	_ sitesearch.CorpusWriter   = (*CorpusWriter)(nil)
	_ sitesearch.MetadataWriter = (*MetadataWriter)(nil)
)

// CorpusWriter is a mock implementation of sitesearch.CorpusWriter.
type CorpusWriter struct {
	WriteCorpusFn func(ctx context.Context, records []*sitesearch.Record) error
}

// WriteCorpus calls WriteCorpusFn.
func (w *CorpusWriter) WriteCorpus(ctx context.Context, records []*sitesearch.Record) error {
	return w.WriteCorpusFn(ctx, records)
}

// MetadataWriter is a mock implementation of sitesearch.MetadataWriter.
type MetadataWriter struct {
	WriteMetadataFn func(ctx context.Context, metadata map[string]sitesearch.PageMetadata) error
}

// WriteMetadata calls WriteMetadataFn.
func (w *MetadataWriter) WriteMetadata(ctx context.Context, metadata map[string]sitesearch.PageMetadata) error {
	return w.WriteMetadataFn(ctx, metadata)
}
