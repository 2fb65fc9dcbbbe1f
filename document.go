package sitesearch

import (
	"context"
	"time"
)

// PageContext identifies one page of the site. It travels alongside the
// parsed page instead of being attached to it.
type PageContext struct {
	// Path is the filesystem path of the page (site root joined with the
	// root-relative path). It is the identity key for boost lookups.
	Path string

	// URL is the root-relative address, e.g. "/blog/post.html".
	URL string
}

// Document is one indexed page.
type Document struct {
	Path       string            `json:"path"`
	URL        string            `json:"url"`
	Date       *time.Time        `json:"date,omitempty"`
	Categories map[string]string `json:"categories"`
	Content    string            `json:"content"`
	FileTerms  *string           `json:"file_terms,omitempty"`
}

// Record pairs a document with its final boost. A slice of records is the
// corpus handed to the search index builder.
type Record struct {
	Document *Document `json:"document"`
	Boost    int       `json:"boost"`
}

// PageMetadata holds per-page display data keyed by URL in the metadata
// artifact.
type PageMetadata struct {
	Title string `json:"title"`
}

// PathResolver expands glob patterns relative to the site root.
type PathResolver interface {
	// Glob expands a single pattern relative to the site root.
	// Returns EINVALID for a malformed pattern.
	Glob(pattern string) ([]string, error)

	// Paths returns every path matched by include minus every path matched
	// by exclude, sorted.
	Paths(include, exclude []string) ([]string, error)

	// URL returns the root-relative URL of a path under the site root.
	// Returns EINVALID if the path lies outside the root.
	URL(path string) (string, error)
}

// PageReader reads the raw HTML of a page.
type PageReader interface {
	ReadPage(ctx context.Context, path string) (string, error)
}

// CorpusWriter persists the assembled corpus, replacing prior content.
type CorpusWriter interface {
	WriteCorpus(ctx context.Context, records []*Record) error
}

// MetadataWriter persists page metadata keyed by URL.
type MetadataWriter interface {
	WriteMetadata(ctx context.Context, metadata map[string]PageMetadata) error
}
