package sitesearch

import (
	"context"
	"time"
)

// SearchConfig is the configuration shipped to the client-side search
// alongside the items.
type SearchConfig struct {
	// Separator is the regular expression the client tokenizer splits on.
	Separator string `json:"separator"`
}

// SearchIndex is the site-wide search index.
type SearchIndex struct {
	Config SearchConfig `json:"config"`
	Items  []SearchItem `json:"items"`
}

// IndexWriter persists a search index.
type IndexWriter interface {
	WriteIndex(ctx context.Context, index *SearchIndex) error
}

// ItemCache stores the search items of pages keyed by content hash so
// unchanged pages can skip sectioning on the next build.
type ItemCache interface {
	// FindItems returns the cached items of the page at path.
	// Returns ENOTFOUND if nothing is cached or the hash differs.
	FindItems(ctx context.Context, path, hash string) ([]SearchItem, error)

	// SaveItems stores the items of the page at path, replacing any
	// previous entry.
	SaveItems(ctx context.Context, path, hash string, items []SearchItem) error

	// RecordBuild stores a summary of a finished build. ID and CreatedAt
	// are assigned by the cache.
	RecordBuild(ctx context.Context, build *Build) error

	// FindBuilds returns recorded builds, most recent first.
	FindBuilds(ctx context.Context, filter BuildFilter) ([]*Build, error)
}

// BuildFilter represents a filter passed to FindBuilds.
type BuildFilter struct {
	// Restrict to a subset of the results.
	Offset int
	Limit  int
}

// Build summarizes a single index build.
type Build struct {
	ID        string    `json:"id"`
	Pages     int       `json:"pages"`
	Items     int       `json:"items"`
	Failed    int       `json:"failed"`
	Cached    int       `json:"cached"`
	CreatedAt time.Time `json:"createdAt"`
}
