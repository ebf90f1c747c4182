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

	// Logger is nil unless verbose output was requested.
	Logger *slog.Logger

	// Config is nil for commands that do not read the project config.
	Config *sitesearch.Config

	Renderer    sitesearch.Renderer
	Reader      sitesearch.PageReader
	Sectionizer sitesearch.Sectionizer

	// Cache and Pruner are nil when caching is disabled.
	Cache  sitesearch.ItemCache
	Pruner CachePruner
}

// CachePruner removes cached pages that no longer exist.
type CachePruner interface {
	PrunePages(ctx context.Context, keep []string) (int, error)
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config  string `short:"c" type:"path" env:"SITESEARCH_CONFIG" help:"Project config file (default: zensical.toml, sitesearch.toml or mkdocs.yml)"`
	NoCache bool   `help:"Section every page without consulting the cache"`
	Verbose bool   `short:"v" help:"Log every operation to stderr"`

	Build    BuildCmd    `cmd:"" help:"Index the Markdown sources of a project"`
	Site     SiteCmd     `cmd:"" help:"Index an already built site"`
	Sections SectionsCmd `cmd:"" help:"Print the search sections of an HTML file"`
	Watch    WatchCmd    `cmd:"" help:"Rebuild the index whenever sources change"`
	History  HistoryCmd  `cmd:"" help:"List recent builds of the project"`
}

// BuildCmd is the "build" subcommand.
type BuildCmd struct {
	Concurrency int `short:"j" help:"Pages sectioned concurrently (default: GOMAXPROCS)"`
}

// SiteCmd is the "site" subcommand.
type SiteCmd struct {
	Concurrency int `short:"j" help:"Pages sectioned concurrently (default: GOMAXPROCS)"`
}

// SectionsCmd is the "sections" subcommand.
type SectionsCmd struct {
	File   string `arg:"" type:"existingfile" help:"HTML file to sectionize"`
	Format string `short:"f" enum:"json,text" default:"json" help:"Output format (json, text)"`
}

// WatchCmd is the "watch" subcommand.
type WatchCmd struct {
	Concurrency int           `short:"j" help:"Pages sectioned concurrently (default: GOMAXPROCS)"`
	Debounce    time.Duration `default:"250ms" help:"Quiet period before rebuilding"`

	// Ready, if set, is closed once sources are being watched.
	Ready chan struct{} `kong:"-"`
}

// HistoryCmd is the "history" subcommand.
type HistoryCmd struct {
	Limit int `short:"n" default:"10" help:"Number of builds to show"`
}
