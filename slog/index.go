package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/sitesearch"
)

// Compile-time interface verification.
var (
	_ sitesearch.IndexWriter = (*LoggingIndexWriter)(nil)
	_ sitesearch.ItemCache   = (*LoggingItemCache)(nil)
)

// LoggingIndexWriter wraps an IndexWriter with debug logging.
type LoggingIndexWriter struct {
	next   sitesearch.IndexWriter
	logger *slog.Logger
}

// NewLoggingIndexWriter creates a new LoggingIndexWriter.
func NewLoggingIndexWriter(next sitesearch.IndexWriter, logger *slog.Logger) *LoggingIndexWriter {
	return &LoggingIndexWriter{next: next, logger: logger}
}

// WriteIndex delegates to the wrapped writer and logs the operation.
func (w *LoggingIndexWriter) WriteIndex(ctx context.Context, index *sitesearch.SearchIndex) (err error) {
	defer func(begin time.Time) {
		w.logger.Info("write index",
			"items", len(index.Items),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return w.next.WriteIndex(ctx, index)
}

// LoggingItemCache wraps an ItemCache with debug logging.
type LoggingItemCache struct {
	next   sitesearch.ItemCache
	logger *slog.Logger
}

// NewLoggingItemCache creates a new LoggingItemCache.
func NewLoggingItemCache(next sitesearch.ItemCache, logger *slog.Logger) *LoggingItemCache {
	return &LoggingItemCache{next: next, logger: logger}
}

// FindItems delegates to the wrapped cache and logs whether it was a hit.
func (c *LoggingItemCache) FindItems(ctx context.Context, path, hash string) (items []sitesearch.SearchItem, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"path", path,
			"hit", err == nil,
			"duration", time.Since(begin),
		}
		if err != nil && sitesearch.ErrorCode(err) != sitesearch.ENOTFOUND {
			attrs = append(attrs, "err", err)
		}
		c.logger.Info("cache lookup", attrs...)
	}(time.Now())
	return c.next.FindItems(ctx, path, hash)
}

// SaveItems delegates to the wrapped cache and logs the operation.
func (c *LoggingItemCache) SaveItems(ctx context.Context, path, hash string, items []sitesearch.SearchItem) (err error) {
	defer func(begin time.Time) {
		c.logger.Info("cache save",
			"path", path,
			"items", len(items),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return c.next.SaveItems(ctx, path, hash, items)
}

// RecordBuild delegates to the wrapped cache and logs the build summary.
func (c *LoggingItemCache) RecordBuild(ctx context.Context, build *sitesearch.Build) (err error) {
	defer func(begin time.Time) {
		c.logger.Info("record build",
			"id", build.ID,
			"pages", build.Pages,
			"items", build.Items,
			"failed", build.Failed,
			"cached", build.Cached,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return c.next.RecordBuild(ctx, build)
}

// FindBuilds delegates to the wrapped cache.
func (c *LoggingItemCache) FindBuilds(ctx context.Context, filter sitesearch.BuildFilter) ([]*sitesearch.Build, error) {
	return c.next.FindBuilds(ctx, filter)
}
