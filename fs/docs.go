package fs

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/sitesearch"
)

// Ensure DocsSource implements sitesearch.PageSource at compile time.
var _ sitesearch.PageSource = (*DocsSource)(nil)

// DocsSource renders the Markdown pages of a docs directory.
type DocsSource struct {
	dir      string
	renderer sitesearch.Renderer

	// UseDirectoryURLs selects "a/b/" over "a/b.html" page URLs.
	UseDirectoryURLs bool
}

// NewDocsSource creates a DocsSource reading from dir.
func NewDocsSource(dir string, renderer sitesearch.Renderer) *DocsSource {
	return &DocsSource{
		dir:              dir,
		renderer:         renderer,
		UseDirectoryURLs: true,
	}
}

// Pages renders every *.md file below the docs directory. Hidden files and
// directories are skipped.
func (s *DocsSource) Pages(ctx context.Context) ([]*sitesearch.Page, error) {
	paths, err := walk(s.dir, ".md", nil)
	if err != nil {
		return nil, err
	}

	pages := make([]*sitesearch.Page, 0, len(paths))
	for _, rel := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		source, err := os.ReadFile(filepath.Join(s.dir, filepath.FromSlash(rel)))
		if err != nil {
			return nil, err
		}
		page, err := s.renderer.Render(ctx, rel, source)
		if err != nil {
			return nil, err
		}
		page.SourcePath = rel
		page.URL = sitesearch.PageURL(rel, s.UseDirectoryURLs)
		pages = append(pages, page)
	}
	return pages, nil
}

// walk returns the slash-separated paths, relative to dir, of the files with
// the given extension. Hidden entries and names in skip are ignored.
func walk(dir, ext string, skip map[string]bool) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if p != dir && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || filepath.Ext(p) != ext || skip[d.Name()] {
			return nil
		}

		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		paths = append(paths, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", dir, err)
	}
	return paths, nil
}
