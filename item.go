package sitesearch

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// SearchItem is one indexable section of a page: the text between a heading
// and the next heading, attributed to the heading's anchor.
type SearchItem struct {
	// Location is the anchor of the section. Sectionizers leave it nil for
	// the first section of a page; the index builder later rewrites it to
	// the page URL, optionally followed by "#anchor".
	Location *string `json:"location"`

	// Level is the heading level (1-6).
	Level int `json:"level"`

	Title string `json:"title"`
	Text  string `json:"text"`

	// Path holds the breadcrumb titles of the page. Empty until the index
	// builder fills it in.
	Path []string `json:"path"`

	// Tags holds the page tags. Empty until the index builder fills it in.
	Tags []string `json:"tags"`
}

// Anchor returns the location of the item, or an empty string if it has none.
func (i *SearchItem) Anchor() string {
	if i.Location == nil {
		return ""
	}
	return *i.Location
}

// Sectionizer divides a rendered HTML document into search items.
type Sectionizer interface {
	// Sectionize returns the items of a single document in document order.
	// Sections whose heading is excluded from search are omitted.
	// Returns ETOOCOMPLEX if the document exceeds the configured limits.
	Sectionize(html string) ([]SearchItem, error)
}

// TitleFromFileName derives a page title from a file or directory name.
// Dashes and underscores become spaces, and an all-lowercase result gets its
// first letter capitalized: "getting-started.md" -> "Getting started".
func TitleFromFileName(name string) string {
	title := strings.TrimSuffix(name, ".md")
	title = strings.TrimSuffix(title, ".html")
	title = strings.NewReplacer("-", " ", "_", " ").Replace(title)
	if strings.ToLower(title) != title {
		return title
	}

	r, size := utf8.DecodeRuneInString(title)
	if r == utf8.RuneError {
		return title
	}
	return string(unicode.ToUpper(r)) + title[size:]
}
