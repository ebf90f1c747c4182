package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/sitesearch"
	"github.com/fwojciec/sitesearch/mock"
	sslog "github.com/fwojciec/sitesearch/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingIndexWriter_WriteIndex(t *testing.T) {
	t.Parallel()

	t.Run("logs item count and duration", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		var got *sitesearch.SearchIndex
		inner := &mock.IndexWriter{
			WriteIndexFn: func(ctx context.Context, index *sitesearch.SearchIndex) error {
				got = index
				return nil
			},
		}
		index := &sitesearch.SearchIndex{Items: make([]sitesearch.SearchItem, 3)}

		w := sslog.NewLoggingIndexWriter(inner, logger)
		err := w.WriteIndex(context.Background(), index)

		require.NoError(t, err)
		assert.Same(t, index, got)
		output := buf.String()
		assert.Contains(t, output, "write index")
		assert.Contains(t, output, "items=3")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.IndexWriter{
			WriteIndexFn: func(ctx context.Context, index *sitesearch.SearchIndex) error {
				return errors.New("disk full")
			},
		}

		w := sslog.NewLoggingIndexWriter(inner, logger)
		err := w.WriteIndex(context.Background(), &sitesearch.SearchIndex{})

		require.Error(t, err)
		assert.Contains(t, buf.String(), "err=\"disk full\"")
	})
}

func TestLoggingItemCache_FindItems(t *testing.T) {
	t.Parallel()

	t.Run("logs cache hit", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.ItemCache{
			FindItemsFn: func(ctx context.Context, path, hash string) ([]sitesearch.SearchItem, error) {
				return []sitesearch.SearchItem{{Level: 1}}, nil
			},
		}

		c := sslog.NewLoggingItemCache(inner, logger)
		items, err := c.FindItems(context.Background(), "guide.md", "abc")

		require.NoError(t, err)
		assert.Len(t, items, 1)
		output := buf.String()
		assert.Contains(t, output, "cache lookup")
		assert.Contains(t, output, "path=guide.md")
		assert.Contains(t, output, "hit=true")
	})

	t.Run("logs miss without error attribute", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.ItemCache{
			FindItemsFn: func(ctx context.Context, path, hash string) ([]sitesearch.SearchItem, error) {
				return nil, sitesearch.Errorf(sitesearch.ENOTFOUND, "items not found")
			},
		}

		c := sslog.NewLoggingItemCache(inner, logger)
		_, err := c.FindItems(context.Background(), "guide.md", "abc")

		assert.Equal(t, sitesearch.ENOTFOUND, sitesearch.ErrorCode(err))
		output := buf.String()
		assert.Contains(t, output, "hit=false")
		assert.NotContains(t, output, "err=")
	})

	t.Run("logs unexpected errors", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.ItemCache{
			FindItemsFn: func(ctx context.Context, path, hash string) ([]sitesearch.SearchItem, error) {
				return nil, errors.New("database is locked")
			},
		}

		c := sslog.NewLoggingItemCache(inner, logger)
		_, err := c.FindItems(context.Background(), "guide.md", "abc")

		require.Error(t, err)
		assert.Contains(t, buf.String(), "err=\"database is locked\"")
	})
}

func TestLoggingItemCache_SaveItems(t *testing.T) {
	t.Parallel()

	t.Run("logs path and item count", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.ItemCache{
			SaveItemsFn: func(ctx context.Context, path, hash string, items []sitesearch.SearchItem) error {
				return nil
			},
		}

		c := sslog.NewLoggingItemCache(inner, logger)
		err := c.SaveItems(context.Background(), "guide.md", "abc", make([]sitesearch.SearchItem, 4))

		require.NoError(t, err)
		output := buf.String()
		assert.Contains(t, output, "cache save")
		assert.Contains(t, output, "path=guide.md")
		assert.Contains(t, output, "items=4")
	})
}

func TestLoggingItemCache_RecordBuild(t *testing.T) {
	t.Parallel()

	t.Run("logs build summary after recording", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.ItemCache{
			RecordBuildFn: func(ctx context.Context, build *sitesearch.Build) error {
				build.ID = "build-1"
				return nil
			},
		}

		c := sslog.NewLoggingItemCache(inner, logger)
		err := c.RecordBuild(context.Background(), &sitesearch.Build{Pages: 5, Items: 12, Cached: 3})

		require.NoError(t, err)
		output := buf.String()
		assert.Contains(t, output, "record build")
		assert.Contains(t, output, "id=build-1")
		assert.Contains(t, output, "pages=5")
		assert.Contains(t, output, "items=12")
		assert.Contains(t, output, "cached=3")
	})
}

func TestLoggingItemCache_FindBuilds(t *testing.T) {
	t.Parallel()

	t.Run("delegates to inner cache", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		want := []*sitesearch.Build{{ID: "b1"}}
		var gotFilter sitesearch.BuildFilter
		inner := &mock.ItemCache{
			FindBuildsFn: func(ctx context.Context, filter sitesearch.BuildFilter) ([]*sitesearch.Build, error) {
				gotFilter = filter
				return want, nil
			},
		}

		c := sslog.NewLoggingItemCache(inner, logger)
		builds, err := c.FindBuilds(context.Background(), sitesearch.BuildFilter{Limit: 5})

		require.NoError(t, err)
		assert.Equal(t, want, builds)
		assert.Equal(t, 5, gotFilter.Limit)
	})
}
