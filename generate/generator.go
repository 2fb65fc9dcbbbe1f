// Package generate runs the corpus build: it resolves the site's pages,
// extracts and scores each one, and hands the assembled records to the
// configured writers.
package generate

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/fwojciec/sitesearch"
)

// Result summarizes one corpus build.
type Result struct {
	Records  []*sitesearch.Record
	Metadata map[string]sitesearch.PageMetadata

	// SoftFailures counts pages whose extraction failed and that were
	// indexed with empty categories.
	SoftFailures int
}

// Generator builds the search corpus of a site.
type Generator struct {
	Resolver  sitesearch.PathResolver
	Pages     sitesearch.PageReader
	Extractor sitesearch.Extractor
	Scorer    *sitesearch.Scorer // nil scores every page DefaultBoost
	FileTerms *sitesearch.FileTermMatcher

	// Rules are used to build the empty extraction of a page that fails
	// to extract.
	Rules []sitesearch.ExtractRule

	IncludePaths []string
	ExcludePaths []string

	Corpus sitesearch.CorpusWriter

	// Metadata is optional. Page titles are not written when nil.
	Metadata sitesearch.MetadataWriter

	// Logger receives per-page warnings. Defaults to discarding them.
	Logger *slog.Logger
}

// Run builds every record and writes the corpus, followed by the metadata
// when a metadata writer is configured.
func (g *Generator) Run(ctx context.Context) (*Result, error) {
	if g.Corpus == nil {
		return nil, sitesearch.Errorf(sitesearch.EINVALID, "corpus writer required")
	}

	result, err := g.build(ctx)
	if err != nil {
		return nil, err
	}

	if err := g.Corpus.WriteCorpus(ctx, result.Records); err != nil {
		return nil, fmt.Errorf("write corpus: %w", err)
	}

	if g.Metadata != nil {
		if err := g.Metadata.WriteMetadata(ctx, result.Metadata); err != nil {
			return nil, fmt.Errorf("write metadata: %w", err)
		}
	}

	return result, nil
}

// Preview builds every record without writing anything.
func (g *Generator) Preview(ctx context.Context) (*Result, error) {
	return g.build(ctx)
}

func (g *Generator) build(ctx context.Context) (*Result, error) {
	paths, err := g.Resolver.Paths(g.includePaths(), g.ExcludePaths)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Records:  make([]*sitesearch.Record, 0, len(paths)),
		Metadata: make(map[string]sitesearch.PageMetadata, len(paths)),
	}
	seen := make(map[string]string, len(paths))

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		url, err := g.Resolver.URL(path)
		if err != nil {
			return nil, err
		}
		if prev, ok := seen[url]; ok {
			return nil, sitesearch.Errorf(sitesearch.ECONFLICT, "url %q produced by both %q and %q", url, prev, path)
		}
		seen[url] = path

		html, err := g.Pages.ReadPage(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}

		page := sitesearch.PageContext{Path: path, URL: url}
		ext, err := g.Extractor.Extract(html)
		if err != nil {
			g.logger().Warn("extraction failed, indexing empty document", "path", path, "err", err)
			ext = sitesearch.EmptyExtraction(g.Rules)
			result.SoftFailures++
		}
		if ext.Date == nil && ext.RawDate != "" {
			g.logger().Warn("unparseable date, treating as undated", "path", path, "date", ext.RawDate)
		}
		if ext.Title == "" {
			g.logger().Debug("page has no title", "path", path)
		}

		boost := g.scorer().Score(page, ext.Date)
		result.Records = append(result.Records, sitesearch.Assemble(page, ext, boost, g.FileTerms))
		result.Metadata[url] = sitesearch.PageMetadata{Title: ext.Title}
	}

	return result, nil
}

func (g *Generator) includePaths() []string {
	if len(g.IncludePaths) == 0 {
		return []string{sitesearch.DefaultIncludePath}
	}
	return g.IncludePaths
}

func (g *Generator) scorer() *sitesearch.Scorer {
	if g.Scorer == nil {
		return &sitesearch.Scorer{}
	}
	return g.Scorer
}

func (g *Generator) logger() *slog.Logger {
	if g.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return g.Logger
}
