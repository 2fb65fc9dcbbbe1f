package mock

import "github.com/fwojciec/sitesearch"

var _ sitesearch.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of sitesearch.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*sitesearch.Extraction, error)
}

// Extract calls ExtractFn.
func (e *Extractor) Extract(html string) (*sitesearch.Extraction, error) {
	return e.ExtractFn(html)
}
