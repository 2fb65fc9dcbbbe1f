package mock

import (
	"context"

	"github.com/fwojciec/sitesearch"
)

var _ sitesearch.PageReader = (*PageReader)(nil)

// PageReader is a mock implementation of sitesearch.PageReader.
type PageReader struct {
	ReadPageFn func(ctx context.Context, path string) (string, error)
}

// ReadPage calls ReadPageFn.
func (r *PageReader) ReadPage(ctx context.Context, path string) (string, error) {
	return r.ReadPageFn(ctx, path)
}
