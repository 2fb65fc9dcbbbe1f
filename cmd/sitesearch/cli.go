package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/sitesearch"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
	Clock  sitesearch.Clock
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Log every page read and extraction"`

	Build BuildCmd `cmd:"" help:"Build the search corpus of a site"`
	Watch WatchCmd `cmd:"" help:"Rebuild the search corpus whenever the site changes"`
}

// BuildCmd is the "build" subcommand.
type BuildCmd struct {
	Config         string `arg:"" help:"Path to the JSON or TOML configuration file"`
	Output         string `short:"o" help:"Override the corpus output path"`
	MetaDataOutput string `name:"meta-data-output" help:"Override the page metadata output path"`
	Preview        bool   `short:"p" help:"Print each page URL and boost without writing anything"`
}

// WatchCmd is the "watch" subcommand.
type WatchCmd struct {
	Config   string        `arg:"" help:"Path to the JSON or TOML configuration file"`
	Debounce time.Duration `default:"250ms" help:"Quiet period after a change before rebuilding"`
}
