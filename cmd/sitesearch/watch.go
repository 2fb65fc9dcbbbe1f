package main

import (
	"context"
	"fmt"

	"github.com/fwojciec/sitesearch"
	"github.com/fwojciec/sitesearch/fs"
	"github.com/fwojciec/sitesearch/fsnotify"
)

// Run executes the watch command. The configuration is reloaded before
// every rebuild so edits to it take effect without a restart.
func (c *WatchCmd) Run(deps *Dependencies) error {
	cfg, err := fs.LoadConfig(c.Config)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sitesearch.ErrorMessage(err))
		return err
	}

	rebuild := func(ctx context.Context) error {
		cfg, err := fs.LoadConfig(c.Config)
		if err != nil {
			return err
		}
		g, err := newGenerator(cfg, deps)
		if err != nil {
			return err
		}
		result, err := g.Run(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(deps.Stdout, "Wrote %d documents to %s\n", len(result.Records), cfg.Output)
		return nil
	}

	if err := rebuild(deps.Ctx); err != nil {
		deps.Logger.Error("initial build failed", "err", err)
	}

	ignore := []string{cfg.Output}
	if cfg.MetadataOutput != "" {
		ignore = append(ignore, cfg.MetadataOutput)
	}

	fmt.Fprintf(deps.Stdout, "Watching %s for changes\n", cfg.SiteRoot)
	w := &fsnotify.Watcher{Debounce: c.Debounce, Logger: deps.Logger}
	return w.Watch(deps.Ctx, cfg.SiteRoot, ignore, rebuild)
}
