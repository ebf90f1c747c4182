package html

import "strings"

// element is an open tag together with its attributes.
//
// Elements compare by tag name only: the skip set and every "is an element
// with this tag open" check treat two elements sharing a tag as the same.
type element struct {
	tag   string
	attrs map[string]string
}

// has reports whether the element carries the attribute, with or without
// a value.
func (e element) has(key string) bool {
	_, ok := e.attrs[key]
	return ok
}

// attr returns the value of the attribute, or an empty string.
func (e element) attr(key string) string {
	return e.attrs[key]
}

// excluded reports whether the element and its subtree are removed from
// the index: explicitly via data-search-exclude, or line numbers of code
// blocks rendered as a table.
func (e element) excluded() bool {
	return e.has("data-search-exclude") || e.attr("class") == "linenodiv"
}

// prefaceTag anchors the implicit section that holds content preceding
// the first heading. It never matches an open element.
const prefaceTag = "hx"

// keepTags are rendered into titles and texts as bare markup.
var keepTags = map[string]bool{
	"p":    true,
	"code": true,
	"pre":  true,
	"li":   true,
	"ol":   true,
	"ul":   true,
	"sub":  true,
	"sup":  true,
}

// voidTags never have content and never get a closing tag.
var voidTags = map[string]bool{
	"area":   true,
	"base":   true,
	"br":     true,
	"col":    true,
	"embed":  true,
	"hr":     true,
	"img":    true,
	"input":  true,
	"link":   true,
	"meta":   true,
	"param":  true,
	"source": true,
	"track":  true,
	"wbr":    true,
}

// seedSkipTags are skipped from the start and stay skipped for the whole
// document.
var seedSkipTags = map[string]bool{
	"object": true,
	"script": true,
	"style":  true,
}

// headingLevel returns the level of an h1-h6 tag, or 0.
func headingLevel(tag string) int {
	if len(tag) != 2 || tag[0] != 'h' || tag[1] < '1' || tag[1] > '6' {
		return 0
	}
	return int(tag[1] - '0')
}

// escaper escapes markup characters in text. Quotes are left alone.
var escaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// isSpace reports whether s is non-empty and consists of whitespace only.
func isSpace(s string) bool {
	return s != "" && strings.TrimSpace(s) == ""
}
