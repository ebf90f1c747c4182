package mock

import (
	"context"

	"github.com/fwojciec/sitesearch"
)

// Compile-time interface verification.
var (
	_ sitesearch.IndexWriter = (*IndexWriter)(nil)
	_ sitesearch.ItemCache   = (*ItemCache)(nil)
)

// IndexWriter is a mock implementation of sitesearch.IndexWriter.
type IndexWriter struct {
	WriteIndexFn func(ctx context.Context, index *sitesearch.SearchIndex) error
}

func (w *IndexWriter) WriteIndex(ctx context.Context, index *sitesearch.SearchIndex) error {
	return w.WriteIndexFn(ctx, index)
}

// ItemCache is a mock implementation of sitesearch.ItemCache.
type ItemCache struct {
	FindItemsFn   func(ctx context.Context, path, hash string) ([]sitesearch.SearchItem, error)
	SaveItemsFn   func(ctx context.Context, path, hash string, items []sitesearch.SearchItem) error
	RecordBuildFn func(ctx context.Context, build *sitesearch.Build) error
	FindBuildsFn  func(ctx context.Context, filter sitesearch.BuildFilter) ([]*sitesearch.Build, error)
}

func (c *ItemCache) FindItems(ctx context.Context, path, hash string) ([]sitesearch.SearchItem, error) {
	return c.FindItemsFn(ctx, path, hash)
}

func (c *ItemCache) SaveItems(ctx context.Context, path, hash string, items []sitesearch.SearchItem) error {
	return c.SaveItemsFn(ctx, path, hash, items)
}

func (c *ItemCache) RecordBuild(ctx context.Context, build *sitesearch.Build) error {
	return c.RecordBuildFn(ctx, build)
}

func (c *ItemCache) FindBuilds(ctx context.Context, filter sitesearch.BuildFilter) ([]*sitesearch.Build, error) {
	return c.FindBuildsFn(ctx, filter)
}
