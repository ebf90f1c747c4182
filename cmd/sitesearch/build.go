package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fwojciec/sitesearch"
	"github.com/fwojciec/sitesearch/fs"
	"github.com/fwojciec/sitesearch/index"
	sslog "github.com/fwojciec/sitesearch/slog"
)

// Run executes the build command.
func (c *BuildCmd) Run(deps *Dependencies) error {
	if !deps.Config.Search.Enabled {
		fmt.Fprintln(deps.Stdout, "Search plugin disabled, nothing to index.")
		return nil
	}
	_, err := runBuild(deps, docsSource(deps), c.Concurrency)
	return err
}

// docsSource returns the Markdown sources of the project.
func docsSource(deps *Dependencies) sitesearch.PageSource {
	source := fs.NewDocsSource(deps.Config.DocsDir, deps.Renderer)
	source.UseDirectoryURLs = deps.Config.UseDirectoryURLs
	return source
}

// indexPath returns the location of the search index inside the site.
func indexPath(cfg *sitesearch.Config) string {
	return filepath.Join(cfg.SiteDir, "search", "search.json")
}

// runBuild indexes the pages of source and reports progress.
func runBuild(deps *Dependencies, source sitesearch.PageSource, concurrency int) (*index.Result, error) {
	cfg := deps.Config
	var writer sitesearch.IndexWriter = fs.NewIndexWriter(indexPath(cfg))
	if deps.Logger != nil {
		source = sslog.NewLoggingPageSource(source, deps.Logger)
		writer = sslog.NewLoggingIndexWriter(writer, deps.Logger)
	}

	builder := &index.Builder{
		Pages:       source,
		Sectionizer: deps.Sectionizer,
		Writer:      writer,
		Cache:       deps.Cache,
		Separator:   cfg.Search.Separator,
		Concurrency: concurrency,
	}

	progress := func(event index.ProgressEvent) {
		switch event.Type {
		case index.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "  Found %d pages\n", event.Total)
		case index.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  skip %s: %s\n", event.SourcePath, sitesearch.ErrorMessage(event.Error))
		}
	}

	result, err := builder.Build(deps.Ctx, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sitesearch.ErrorMessage(err))
		return nil, err
	}

	if deps.Pruner != nil {
		// A stale cache only costs disk space.
		if _, err := deps.Pruner.PrunePages(deps.Ctx, result.SourcePaths); err != nil && deps.Logger != nil {
			deps.Logger.Info("prune cache", "err", err)
		}
	}

	fmt.Fprintf(deps.Stdout, "  Indexed %d items from %d pages (%d cached, %d excluded, %d failed)\n",
		result.Items, result.Pages, result.Cached, result.Excluded, result.Failed)
	if info, err := os.Stat(indexPath(cfg)); err == nil {
		fmt.Fprintf(deps.Stdout, "  Wrote %s (%s)\n", indexPath(cfg), index.FormatBytes(info.Size()))
	}
	return result, nil
}
