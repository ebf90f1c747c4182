package fs

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"

	"github.com/beevik/etree"
	"github.com/fwojciec/sitesearch"
)

// Ensure SiteSource implements sitesearch.PageSource at compile time.
var _ sitesearch.PageSource = (*SiteSource)(nil)

// SiteSource reads the pages of an already built site.
//
// Pages are taken from sitemap.xml when the site has one and SiteURL is set.
// Otherwise every *.html file except 404.html is read.
type SiteSource struct {
	dir    string
	reader sitesearch.PageReader

	// SiteURL is the canonical URL of the site, used to resolve sitemap
	// locations.
	SiteURL string

	// UseDirectoryURLs maps "a/index.html" to "a/" when no sitemap is used.
	UseDirectoryURLs bool
}

// NewSiteSource creates a SiteSource reading from dir.
func NewSiteSource(dir string, reader sitesearch.PageReader) *SiteSource {
	return &SiteSource{
		dir:              dir,
		reader:           reader,
		UseDirectoryURLs: true,
	}
}

// Pages reads the pages of the site. Sitemap entries without a file on disk
// are skipped.
func (s *SiteSource) Pages(ctx context.Context) ([]*sitesearch.Page, error) {
	urls, err := s.sitemapURLs()
	if err != nil {
		return nil, err
	}

	type entry struct{ file, url string }
	var entries []entry
	if urls != nil {
		for _, u := range urls {
			entries = append(entries, entry{file: sitePath(u), url: u})
		}
	} else {
		files, err := walk(s.dir, ".html", map[string]bool{"404.html": true})
		if err != nil {
			return nil, err
		}
		for _, f := range files {
			entries = append(entries, entry{file: f, url: siteURL(f, s.UseDirectoryURLs)})
		}
	}

	pages := make([]*sitesearch.Page, 0, len(entries))
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		data, err := os.ReadFile(filepath.Join(s.dir, filepath.FromSlash(e.file)))
		if errors.Is(err, fs.ErrNotExist) {
			continue
		} else if err != nil {
			return nil, err
		}
		page, err := s.reader.ReadPage(string(data))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", e.file, err)
		}
		page.SourcePath = e.file
		page.URL = e.url
		pages = append(pages, page)
	}
	return pages, nil
}

// sitemapURLs returns the site-relative URLs listed in sitemap.xml, or nil
// if the sitemap cannot be used.
func (s *SiteSource) sitemapURLs() ([]string, error) {
	if s.SiteURL == "" {
		return nil, nil
	}
	base, err := url.Parse(s.SiteURL)
	if err != nil {
		return nil, sitesearch.Errorf(sitesearch.EINVALID, "invalid site_url: %v", err)
	}

	seen := make(map[string]bool)
	locs, err := s.readSitemap("sitemap.xml", seen)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}

	urls := []string{}
	dup := make(map[string]bool)
	for _, loc := range locs {
		rel, ok := relativeURL(loc, base)
		if !ok || dup[rel] {
			continue
		}
		dup[rel] = true
		urls = append(urls, rel)
	}
	return urls, nil
}

// readSitemap parses a sitemap file below the site directory, following
// sitemap indexes to nested sitemaps by file name.
func (s *SiteSource) readSitemap(name string, seen map[string]bool) ([]string, error) {
	if seen[name] {
		return nil, nil
	}
	seen[name] = true

	doc := etree.NewDocument()
	if err := doc.ReadFromFile(filepath.Join(s.dir, filepath.FromSlash(name))); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		return nil, fmt.Errorf("parsing sitemap XML: %w", err)
	}

	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("empty sitemap XML")
	}

	if root.Tag == "sitemapindex" {
		var locs []string
		for _, sm := range root.SelectElements("sitemap") {
			loc := sm.SelectElement("loc")
			if loc == nil {
				continue
			}
			u, err := url.Parse(loc.Text())
			if err != nil {
				continue
			}
			nested, err := s.readSitemap(filepath.Base(u.Path), seen)
			if errors.Is(err, fs.ErrNotExist) {
				continue
			} else if err != nil {
				return nil, err
			}
			locs = append(locs, nested...)
		}
		return locs, nil
	}

	var locs []string
	for _, u := range root.SelectElements("url") {
		if loc := u.SelectElement("loc"); loc != nil && loc.Text() != "" {
			locs = append(locs, loc.Text())
		}
	}
	return locs, nil
}
