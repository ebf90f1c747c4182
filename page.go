package sitesearch

import (
	"context"
	"path"
	"strings"
)

// Page represents a single rendered documentation page.
type Page struct {
	// SourcePath is the slash-separated path of the page relative to the
	// docs (or site) directory, e.g. "guide/install.md".
	SourcePath string

	// URL is the site-relative URL of the page, e.g. "guide/install/".
	URL string

	// Title is the page title. May be empty until the index builder
	// derives one.
	Title string

	// HTML is the rendered content of the page.
	HTML string

	Meta PageMeta
}

// PageMeta holds page-level metadata, typically from front matter.
type PageMeta struct {
	Title string
	Tags  []string

	// SearchExclude removes the whole page from the search index.
	SearchExclude bool
}

// IsIndex reports whether the page is the index page of its directory.
func (p *Page) IsIndex() bool {
	return IsIndexFile(path.Base(p.SourcePath))
}

// IsIndexFile reports whether name is the file name of a directory index.
func IsIndexFile(name string) bool {
	switch name {
	case "index.md", "README.md", "index.html":
		return true
	}
	return false
}

// PageURL computes the site-relative URL of a Markdown source path.
// README.md is treated as an index file. With directory URLs, "a/b.md"
// becomes "a/b/" and "a/index.md" becomes "a/"; without them the source
// extension is replaced by ".html".
func PageURL(sourcePath string, useDirectoryURLs bool) string {
	dir, file := path.Split(sourcePath)
	if file == "README.md" {
		file = "index.md"
	}
	stem := strings.TrimSuffix(file, path.Ext(file))

	if stem == "index" {
		if useDirectoryURLs {
			return dir
		}
		return dir + "index.html"
	}
	if useDirectoryURLs {
		return dir + stem + "/"
	}
	return dir + stem + ".html"
}

// Renderer converts page sources into rendered pages.
type Renderer interface {
	// Render converts the source of the page at sourcePath into HTML and
	// extracts its metadata. The returned page has SourcePath, HTML and
	// Meta set.
	Render(ctx context.Context, sourcePath string, source []byte) (*Page, error)
}

// PageReader extracts the searchable content of an already built HTML page.
type PageReader interface {
	// ReadPage returns a page whose HTML is limited to the content region
	// of the document, with title and metadata extracted from the markup.
	ReadPage(html string) (*Page, error)
}

// PageSource discovers the pages of a site.
type PageSource interface {
	Pages(ctx context.Context) ([]*Page, error)
}
