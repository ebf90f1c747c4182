// Package index assembles the site-wide search index from page sections.
package index

import (
	"context"
	"fmt"
	"path"
	"runtime"
	"sync/atomic"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/sitesearch"
	"golang.org/x/sync/errgroup"
)

// Builder sections every page of a site and writes the search index.
type Builder struct {
	Pages       sitesearch.PageSource
	Sectionizer sitesearch.Sectionizer
	Writer      sitesearch.IndexWriter

	// Cache is optional. When set, pages whose content hash is unchanged
	// reuse their items from the previous build.
	Cache sitesearch.ItemCache

	// Separator is shipped to the client tokenizer.
	Separator string

	// Concurrency limits the number of pages sectioned at once.
	// Defaults to GOMAXPROCS.
	Concurrency int
}

// Result holds the outcome of a build.
type Result struct {
	Pages    int
	Items    int
	Failed   int
	Cached   int
	Excluded int

	// Failures holds the pages that could not be indexed, in page order.
	Failures []Failure

	// SourcePaths lists every page of the build in navigation order.
	SourcePaths []string
}

// Failure is a page that could not be indexed.
type Failure struct {
	SourcePath string
	Err        error
}

// ProgressEvent reports progress during a build.
type ProgressEvent struct {
	Type       ProgressType
	Completed  int
	Total      int
	SourcePath string
	Error      error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting build progress.
type ProgressFunc func(event ProgressEvent)

// pageResult holds the outcome of sectioning a single page.
type pageResult struct {
	position int
	items    []sitesearch.SearchItem
	cached   bool
	excluded bool
	err      error
}

// ComputeHash returns the hex-encoded xxhash of content.
func ComputeHash(content string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(content))
}

// Build indexes all pages and writes the index. Pages that fail to section
// are reported through progress and Result; they do not abort the build.
func (b *Builder) Build(ctx context.Context, progress ProgressFunc) (*Result, error) {
	pages, err := b.Pages.Pages(ctx)
	if err != nil {
		return nil, fmt.Errorf("list pages: %w", err)
	}
	SortPages(pages)

	concurrency := b.Concurrency
	if concurrency <= 0 {
		concurrency = runtime.GOMAXPROCS(0)
	}

	total := len(pages)
	notify := func(e ProgressEvent) {
		if progress != nil {
			progress(e)
		}
	}
	notify(ProgressEvent{Type: ProgressStarted, Total: total})

	resultCh := make(chan pageResult, total)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, page := range pages {
			i, page := i, page
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				resultCh <- b.processPage(gctx, i, page)
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	// Collect results in page order
	results := make([]pageResult, total)
	var completed atomic.Int64
	for r := range resultCh {
		results[r.position] = r
		n := int(completed.Add(1))
		if r.err != nil {
			notify(ProgressEvent{Type: ProgressFailed, Completed: n, Total: total, SourcePath: pages[r.position].SourcePath, Error: r.err})
		} else {
			notify(ProgressEvent{Type: ProgressCompleted, Completed: n, Total: total, SourcePath: pages[r.position].SourcePath})
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := &Result{Pages: total}
	items := []sitesearch.SearchItem{}
	for i, page := range pages {
		result.SourcePaths = append(result.SourcePaths, page.SourcePath)
		r := results[i]
		switch {
		case r.err != nil:
			result.Failed++
			result.Failures = append(result.Failures, Failure{SourcePath: page.SourcePath, Err: r.err})
			continue
		case r.excluded:
			result.Excluded++
			continue
		case r.cached:
			result.Cached++
		}

		if page.Title == "" {
			page.Title = pageTitle(page, r.items)
		}
		items = append(items, pageItems(page, r.items)...)
	}
	result.Items = len(items)

	if err := b.Writer.WriteIndex(ctx, &sitesearch.SearchIndex{
		Config: sitesearch.SearchConfig{Separator: b.Separator},
		Items:  items,
	}); err != nil {
		return nil, fmt.Errorf("write index: %w", err)
	}

	if b.Cache != nil {
		if err := b.Cache.RecordBuild(ctx, &sitesearch.Build{
			Pages:  result.Pages,
			Items:  result.Items,
			Failed: result.Failed,
			Cached: result.Cached,
		}); err != nil {
			return nil, fmt.Errorf("record build: %w", err)
		}
	}

	notify(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})
	return result, nil
}

// processPage sections a single page, consulting the cache first.
func (b *Builder) processPage(ctx context.Context, position int, page *sitesearch.Page) pageResult {
	result := pageResult{position: position}
	if page.Meta.SearchExclude {
		result.excluded = true
		return result
	}

	var hash string
	if b.Cache != nil {
		hash = ComputeHash(page.HTML)
		if items, err := b.Cache.FindItems(ctx, page.SourcePath, hash); err == nil {
			result.items = items
			result.cached = true
			return result
		}
	}

	items, err := b.Sectionizer.Sectionize(page.HTML)
	if err != nil {
		result.err = err
		return result
	}
	result.items = items

	if b.Cache != nil {
		// Cache write failures are not fatal.
		_ = b.Cache.SaveItems(ctx, page.SourcePath, hash, items)
	}
	return result
}

// pageTitle derives a title for a page without one: the front matter
// title, else the first top-level section title, else the file name.
func pageTitle(page *sitesearch.Page, items []sitesearch.SearchItem) string {
	if page.Meta.Title != "" {
		return page.Meta.Title
	}
	for _, item := range items {
		if item.Level == 1 && item.Title != "" {
			return item.Title
		}
	}
	return sitesearch.TitleFromFileName(path.Base(page.SourcePath))
}

// pageItems resolves the section items of a page into index items.
func pageItems(page *sitesearch.Page, sections []sitesearch.SearchItem) []sitesearch.SearchItem {
	crumbs := Breadcrumbs(page)
	tags := page.Meta.Tags
	if tags == nil {
		tags = []string{}
	}

	items := make([]sitesearch.SearchItem, 0, len(sections))
	for _, s := range sections {
		location := page.URL
		if s.Location != nil {
			location = page.URL + "#" + *s.Location
		}
		title := s.Title
		if title == "" {
			title = page.Title
		}
		items = append(items, sitesearch.SearchItem{
			Location: &location,
			Level:    s.Level,
			Title:    title,
			Text:     s.Text,
			Path:     append([]string{}, crumbs...),
			Tags:     append([]string{}, tags...),
		})
	}
	return items
}
