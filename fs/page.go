package fs

import (
	"context"
	"errors"
	"fmt"
	iofs "io/fs"
	"os"
	"strings"

	"github.com/fwojciec/sitesearch"
)

// Ensure PageReader implements sitesearch.PageReader at compile time.
var _ sitesearch.PageReader = (*PageReader)(nil)

// PageReader reads pages from disk.
type PageReader struct{}

// NewPageReader creates a new PageReader.
func NewPageReader() *PageReader {
	return &PageReader{}
}

// ReadPage returns the page contents. Invalid UTF-8 sequences are dropped.
// Returns ENOTFOUND if the page does not exist.
func (r *PageReader) ReadPage(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, iofs.ErrNotExist) {
		return "", sitesearch.Errorf(sitesearch.ENOTFOUND, "page %q not found", path)
	} else if err != nil {
		return "", fmt.Errorf("read page %q: %w", path, err)
	}
	return strings.ToValidUTF8(string(data), ""), nil
}
