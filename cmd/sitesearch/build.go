package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/fwojciec/sitesearch"
	"github.com/fwojciec/sitesearch/doublestar"
	"github.com/fwojciec/sitesearch/fs"
	"github.com/fwojciec/sitesearch/generate"
	"github.com/fwojciec/sitesearch/goquery"
	sitesearchslog "github.com/fwojciec/sitesearch/slog"
)

// Run executes the build command.
func (c *BuildCmd) Run(deps *Dependencies) error {
	cfg, err := fs.LoadConfig(c.Config)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sitesearch.ErrorMessage(err))
		return err
	}
	if c.Output != "" {
		cfg.Output = c.Output
	}
	if c.MetaDataOutput != "" {
		cfg.MetadataOutput = c.MetaDataOutput
	}

	g, err := newGenerator(cfg, deps)
	if err != nil {
		return err
	}

	if c.Preview {
		result, err := g.Preview(deps.Ctx)
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(deps.Stdout, 0, 0, 2, ' ', 0)
		for _, r := range result.Records {
			fmt.Fprintf(w, "%s\t%d\n", r.Document.URL, r.Boost)
		}
		if err := w.Flush(); err != nil {
			return err
		}
		fmt.Fprintf(deps.Stdout, "\n%d documents\n", len(result.Records))
		return nil
	}

	result, err := g.Run(deps.Ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(deps.Stdout, "Wrote %d documents to %s\n", len(result.Records), cfg.Output)
	if cfg.MetadataOutput != "" {
		fmt.Fprintf(deps.Stdout, "Wrote page metadata to %s\n", cfg.MetadataOutput)
	}
	if result.SoftFailures > 0 {
		fmt.Fprintf(deps.Stdout, "%d pages could not be extracted and were indexed empty\n", result.SoftFailures)
	}
	return nil
}

// newGenerator wires the corpus pipeline for cfg.
func newGenerator(cfg *sitesearch.Config, deps *Dependencies) (*generate.Generator, error) {
	resolver := doublestar.NewResolver(cfg.SiteRoot)

	tables, err := sitesearch.BuildBoostTables(resolver, cfg.PathBoosts, cfg.CharBoosts)
	if err != nil {
		return nil, err
	}

	fileTerms, err := sitesearch.NewFileTermMatcher(cfg.FileTerms)
	if err != nil {
		return nil, err
	}

	rules := cfg.ExtractRules()
	extractor, err := goquery.NewExtractor(rules,
		goquery.WithMainSelector(cfg.MainSelector),
		goquery.WithDateFields(cfg.DateFields...),
	)
	if err != nil {
		return nil, err
	}

	g := &generate.Generator{
		Resolver:     resolver,
		Pages:        sitesearchslog.NewLoggingPageReader(fs.NewPageReader(), deps.Logger),
		Extractor:    sitesearchslog.NewLoggingExtractor(extractor, deps.Logger),
		Scorer:       &sitesearch.Scorer{Tables: tables, Clock: deps.Clock},
		FileTerms:    fileTerms,
		Rules:        rules,
		IncludePaths: cfg.IncludePaths,
		ExcludePaths: cfg.ExcludePaths,
		Corpus:       sitesearchslog.NewLoggingCorpusWriter(fs.NewJSONFile(cfg.Output), deps.Logger),
		Logger:       deps.Logger,
	}
	if cfg.MetadataOutput != "" {
		g.Metadata = sitesearchslog.NewLoggingMetadataWriter(fs.NewJSONFile(cfg.MetadataOutput), deps.Logger)
	}
	return g, nil
}
