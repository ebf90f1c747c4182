package index_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/fwojciec/sitesearch"
	"github.com/fwojciec/sitesearch/html"
	"github.com/fwojciec/sitesearch/index"
	"github.com/fwojciec/sitesearch/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(s string) *string {
	return &s
}

func staticPages(pages ...*sitesearch.Page) *mock.PageSource {
	return &mock.PageSource{
		PagesFn: func(context.Context) ([]*sitesearch.Page, error) {
			return pages, nil
		},
	}
}

// captureWriter records the written index.
func captureWriter(dst **sitesearch.SearchIndex) *mock.IndexWriter {
	return &mock.IndexWriter{
		WriteIndexFn: func(_ context.Context, idx *sitesearch.SearchIndex) error {
			*dst = idx
			return nil
		},
	}
}

func TestBuilder_Build(t *testing.T) {
	t.Parallel()

	t.Run("assembles index in navigation order", func(t *testing.T) {
		t.Parallel()

		var written *sitesearch.SearchIndex
		b := &index.Builder{
			Pages: staticPages(
				&sitesearch.Page{
					SourcePath: "guide/install.md",
					URL:        "guide/install/",
					HTML:       `<h1 id="install">Install</h1><p>Run</p><h2 id="options">Options</h2><p>Flags</p>`,
					Meta:       sitesearch.PageMeta{Tags: []string{"setup"}},
				},
				&sitesearch.Page{
					SourcePath: "index.md",
					URL:        "",
					Title:      "Home",
					HTML:       `<p>Welcome</p>`,
				},
			),
			Sectionizer: html.NewSectionizer(),
			Writer:      captureWriter(&written),
			Separator:   `[\s]+`,
		}

		result, err := b.Build(context.Background(), nil)

		require.NoError(t, err)
		assert.Equal(t, 2, result.Pages)
		assert.Equal(t, 3, result.Items)
		assert.Zero(t, result.Failed)
		assert.Equal(t, []string{"index.md", "guide/install.md"}, result.SourcePaths)

		require.NotNil(t, written)
		assert.Equal(t, `[\s]+`, written.Config.Separator)
		assert.Equal(t, []sitesearch.SearchItem{
			{Location: ptr(""), Level: 1, Title: "Home", Text: "<p>Welcome</p>", Path: []string{"Home"}, Tags: []string{}},
			{Location: ptr("guide/install/"), Level: 1, Title: "Install", Text: "<p>Run</p>", Path: []string{"Guide", "Install"}, Tags: []string{"setup"}},
			{Location: ptr("guide/install/#options"), Level: 2, Title: "Options", Text: "<p>Flags</p>", Path: []string{"Guide", "Install"}, Tags: []string{"setup"}},
		}, written.Items)
	})

	t.Run("derives missing page titles", func(t *testing.T) {
		t.Parallel()

		var written *sitesearch.SearchIndex
		b := &index.Builder{
			Pages: staticPages(
				&sitesearch.Page{SourcePath: "meta.md", URL: "meta/", HTML: `<p>x</p>`, Meta: sitesearch.PageMeta{Title: "From Meta"}},
				&sitesearch.Page{SourcePath: "getting-started.md", URL: "getting-started/", HTML: `<p>y</p>`},
			),
			Sectionizer: html.NewSectionizer(),
			Writer:      captureWriter(&written),
		}

		_, err := b.Build(context.Background(), nil)

		require.NoError(t, err)
		require.Len(t, written.Items, 2)
		assert.Equal(t, "Getting started", written.Items[0].Title)
		assert.Equal(t, "From Meta", written.Items[1].Title)
	})

	t.Run("skips excluded pages", func(t *testing.T) {
		t.Parallel()

		var written *sitesearch.SearchIndex
		b := &index.Builder{
			Pages: staticPages(&sitesearch.Page{
				SourcePath: "secret.md",
				HTML:       "<p>secret</p>",
				Meta:       sitesearch.PageMeta{SearchExclude: true},
			}),
			Sectionizer: &mock.Sectionizer{
				SectionizeFn: func(string) ([]sitesearch.SearchItem, error) {
					t.Error("excluded page must not be sectioned")
					return nil, nil
				},
			},
			Writer: captureWriter(&written),
		}

		result, err := b.Build(context.Background(), nil)

		require.NoError(t, err)
		assert.Equal(t, 1, result.Excluded)
		assert.NotNil(t, written.Items)
		assert.Empty(t, written.Items)
	})

	t.Run("continues after page failure", func(t *testing.T) {
		t.Parallel()

		var written *sitesearch.SearchIndex
		var mu sync.Mutex
		var events []index.ProgressEvent
		b := &index.Builder{
			Pages: staticPages(
				&sitesearch.Page{SourcePath: "big.md", URL: "big/", HTML: "big"},
				&sitesearch.Page{SourcePath: "ok.md", URL: "ok/", Title: "OK", HTML: "ok"},
			),
			Sectionizer: &mock.Sectionizer{
				SectionizeFn: func(doc string) ([]sitesearch.SearchItem, error) {
					if doc == "big" {
						return nil, sitesearch.Errorf(sitesearch.ETOOCOMPLEX, "document too complex to index")
					}
					return []sitesearch.SearchItem{{Level: 1, Text: doc}}, nil
				},
			},
			Writer:      captureWriter(&written),
			Concurrency: 1,
		}

		result, err := b.Build(context.Background(), func(e index.ProgressEvent) {
			mu.Lock()
			defer mu.Unlock()
			events = append(events, e)
		})

		require.NoError(t, err)
		assert.Equal(t, 1, result.Failed)
		require.Len(t, result.Failures, 1)
		assert.Equal(t, "big.md", result.Failures[0].SourcePath)
		assert.Equal(t, sitesearch.ETOOCOMPLEX, sitesearch.ErrorCode(result.Failures[0].Err))

		require.Len(t, written.Items, 1)
		assert.Equal(t, "OK", written.Items[0].Title)

		require.Len(t, events, 4)
		assert.Equal(t, index.ProgressStarted, events[0].Type)
		assert.Equal(t, index.ProgressFinished, events[3].Type)
		var failed []index.ProgressEvent
		for _, e := range events {
			if e.Type == index.ProgressFailed {
				failed = append(failed, e)
			}
		}
		require.Len(t, failed, 1)
		assert.Equal(t, "big.md", failed[0].SourcePath)
		assert.Error(t, failed[0].Error)
	})

	t.Run("reuses cached items", func(t *testing.T) {
		t.Parallel()

		var written *sitesearch.SearchIndex
		var recorded *sitesearch.Build
		page := &sitesearch.Page{SourcePath: "a.md", URL: "a/", Title: "A", HTML: "<p>a</p>"}
		b := &index.Builder{
			Pages: staticPages(page),
			Sectionizer: &mock.Sectionizer{
				SectionizeFn: func(string) ([]sitesearch.SearchItem, error) {
					t.Error("cached page must not be sectioned")
					return nil, nil
				},
			},
			Writer: captureWriter(&written),
			Cache: &mock.ItemCache{
				FindItemsFn: func(_ context.Context, path, hash string) ([]sitesearch.SearchItem, error) {
					assert.Equal(t, "a.md", path)
					assert.Equal(t, index.ComputeHash("<p>a</p>"), hash)
					return []sitesearch.SearchItem{{Level: 1, Title: "A", Text: "cached"}}, nil
				},
				RecordBuildFn: func(_ context.Context, build *sitesearch.Build) error {
					recorded = build
					return nil
				},
			},
		}

		result, err := b.Build(context.Background(), nil)

		require.NoError(t, err)
		assert.Equal(t, 1, result.Cached)
		require.Len(t, written.Items, 1)
		assert.Equal(t, "cached", written.Items[0].Text)
		require.NotNil(t, recorded)
		assert.Equal(t, 1, recorded.Pages)
		assert.Equal(t, 1, recorded.Items)
		assert.Equal(t, 1, recorded.Cached)
	})

	t.Run("saves sectioned items on cache miss", func(t *testing.T) {
		t.Parallel()

		var written *sitesearch.SearchIndex
		var savedHash string
		var savedItems []sitesearch.SearchItem
		b := &index.Builder{
			Pages:       staticPages(&sitesearch.Page{SourcePath: "a.md", URL: "a/", HTML: `<h1 id="a">A</h1>`}),
			Sectionizer: html.NewSectionizer(),
			Writer:      captureWriter(&written),
			Cache: &mock.ItemCache{
				FindItemsFn: func(context.Context, string, string) ([]sitesearch.SearchItem, error) {
					return nil, sitesearch.Errorf(sitesearch.ENOTFOUND, "items not found")
				},
				SaveItemsFn: func(_ context.Context, _, hash string, items []sitesearch.SearchItem) error {
					savedHash, savedItems = hash, items
					return nil
				},
				RecordBuildFn: func(context.Context, *sitesearch.Build) error {
					return nil
				},
			},
		}

		result, err := b.Build(context.Background(), nil)

		require.NoError(t, err)
		assert.Zero(t, result.Cached)
		assert.Equal(t, index.ComputeHash(`<h1 id="a">A</h1>`), savedHash)
		require.Len(t, savedItems, 1)
		assert.Nil(t, savedItems[0].Location, "cache holds sectionizer output")
		assert.Equal(t, ptr("a/"), written.Items[0].Location)
	})

	t.Run("returns error when pages cannot be listed", func(t *testing.T) {
		t.Parallel()

		b := &index.Builder{
			Pages: &mock.PageSource{
				PagesFn: func(context.Context) ([]*sitesearch.Page, error) {
					return nil, errors.New("disk error")
				},
			},
			Writer: &mock.IndexWriter{
				WriteIndexFn: func(context.Context, *sitesearch.SearchIndex) error {
					t.Error("index must not be written")
					return nil
				},
			},
		}

		_, err := b.Build(context.Background(), nil)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "list pages")
	})

	t.Run("returns writer error", func(t *testing.T) {
		t.Parallel()

		b := &index.Builder{
			Pages:       staticPages(),
			Sectionizer: html.NewSectionizer(),
			Writer: &mock.IndexWriter{
				WriteIndexFn: func(context.Context, *sitesearch.SearchIndex) error {
					return errors.New("read-only file system")
				},
			},
		}

		_, err := b.Build(context.Background(), nil)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "write index")
	})

	t.Run("returns error when context is cancelled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		b := &index.Builder{
			Pages:       staticPages(&sitesearch.Page{SourcePath: "a.md", HTML: "a"}),
			Sectionizer: html.NewSectionizer(),
			Writer: &mock.IndexWriter{
				WriteIndexFn: func(context.Context, *sitesearch.SearchIndex) error {
					t.Error("index must not be written")
					return nil
				},
			},
		}

		_, err := b.Build(ctx, nil)

		assert.ErrorIs(t, err, context.Canceled)
	})
}
