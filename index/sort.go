package index

import (
	"path"
	"sort"
	"strings"

	"github.com/fwojciec/sitesearch"
)

// sortKey orders pages the way the automatic navigation does: by parent
// directories, then the directory index first, then by file name.
type sortKey struct {
	dirs   []string
	notIdx bool
	file   string
}

func keyOf(p *sitesearch.Page) sortKey {
	parts := strings.Split(p.SourcePath, "/")
	file := parts[len(parts)-1]
	return sortKey{
		dirs:   parts[:len(parts)-1],
		notIdx: !sitesearch.IsIndexFile(file),
		file:   file,
	}
}

func (k sortKey) less(o sortKey) bool {
	for i := 0; i < len(k.dirs) && i < len(o.dirs); i++ {
		if k.dirs[i] != o.dirs[i] {
			return k.dirs[i] < o.dirs[i]
		}
	}
	if len(k.dirs) != len(o.dirs) {
		return len(k.dirs) < len(o.dirs)
	}
	if k.notIdx != o.notIdx {
		return !k.notIdx
	}
	return k.file < o.file
}

// SortPages sorts pages in navigation order.
func SortPages(pages []*sitesearch.Page) {
	keys := make(map[*sitesearch.Page]sortKey, len(pages))
	for _, p := range pages {
		keys[p] = keyOf(p)
	}
	sort.SliceStable(pages, func(i, j int) bool {
		return keys[pages[i]].less(keys[pages[j]])
	})
}

// Breadcrumbs returns the navigation path of a page: one title per parent
// directory, followed by the page title unless it repeats the last one.
func Breadcrumbs(p *sitesearch.Page) []string {
	dir := path.Dir(p.SourcePath)
	crumbs := []string{}
	if dir != "." {
		for _, c := range strings.Split(dir, "/") {
			crumbs = append(crumbs, sitesearch.TitleFromFileName(c))
		}
	}
	if len(crumbs) == 0 || crumbs[len(crumbs)-1] != p.Title {
		crumbs = append(crumbs, p.Title)
	}
	return crumbs
}
