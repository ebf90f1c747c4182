package goquery_test

import (
	"testing"

	"github.com/fwojciec/sitesearch/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageReader_ReadPage(t *testing.T) {
	t.Parallel()

	t.Run("reads MkDocs Material page", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head>
	<title>Install - My Docs</title>
	<meta name="keywords" content="setup, cli">
</head>
<body data-md-color-scheme="default">
<nav class="md-nav md-nav--primary"><a href="/">Home navigation</a></nav>
<div class="md-content">
<article class="md-content__inner md-typeset">
<nav class="md-tags"><span class="md-tag">setup</span><span class="md-tag">guide</span></nav>
<h1 id="install">Install</h1>
<p>Run it.</p>
</article>
</div>
</body>
</html>`

		r := goquery.NewPageReader("My Docs")
		page, err := r.ReadPage(html)

		require.NoError(t, err)
		assert.Equal(t, "Install", page.Title)
		assert.Equal(t, "Install", page.Meta.Title)
		assert.Equal(t, []string{"setup", "guide", "cli"}, page.Meta.Tags)
		assert.False(t, page.Meta.SearchExclude)
		assert.Contains(t, page.HTML, `<h1 id="install">Install</h1>`)
		assert.Contains(t, page.HTML, "<p>Run it.</p>")
		assert.NotContains(t, page.HTML, "Home navigation")
	})

	t.Run("reads Sphinx page", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><meta name="generator" content="Sphinx 7.2.6"><title>API</title></head>
<body><div class="document"><div class="body" role="main"><h1 id="api">API</h1><p>Calls.</p></div></div>
<div class="sphinxsidebar">Sidebar links</div></body></html>`

		page, err := goquery.NewPageReader("").ReadPage(html)

		require.NoError(t, err)
		assert.Equal(t, "API", page.Title)
		assert.Contains(t, page.HTML, "<p>Calls.</p>")
		assert.NotContains(t, page.HTML, "Sidebar links")
	})

	t.Run("falls back to body", func(t *testing.T) {
		t.Parallel()

		page, err := goquery.NewPageReader("").ReadPage(`<html><body><p>x</p></body></html>`)

		require.NoError(t, err)
		assert.Equal(t, "<p>x</p>", page.HTML)
		assert.Empty(t, page.Title)
		assert.Empty(t, page.Meta.Tags)
	})

	t.Run("takes title from first heading without permalink", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><main><h1 id="x">Hello<a class="headerlink" href="#x">¶</a></h1></main></body></html>`

		page, err := goquery.NewPageReader("").ReadPage(html)

		require.NoError(t, err)
		assert.Equal(t, "Hello", page.Title)
		assert.Contains(t, page.HTML, "headerlink", "content keeps its markup")
	})

	t.Run("ignores title that is only the site name", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><title>My Docs</title></head><body><article><h1>Home</h1></article></body></html>`

		page, err := goquery.NewPageReader("My Docs").ReadPage(html)

		require.NoError(t, err)
		assert.Equal(t, "Home", page.Title)
	})

	t.Run("marks page excluded by meta tag", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><meta name="search-exclude" content="true"></head><body><p>x</p></body></html>`

		page, err := goquery.NewPageReader("").ReadPage(html)

		require.NoError(t, err)
		assert.True(t, page.Meta.SearchExclude)
	})

	t.Run("marks page excluded by body attribute", func(t *testing.T) {
		t.Parallel()

		page, err := goquery.NewPageReader("").ReadPage(`<html><body data-search-exclude><p>x</p></body></html>`)

		require.NoError(t, err)
		assert.True(t, page.Meta.SearchExclude)
	})
}
