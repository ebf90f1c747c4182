// Package html divides rendered HTML into search sections using the
// golang.org/x/net/html tokenizer.
//
// A document is scanned once. Every h1-h6 heading with an id starts a new
// section; text and a small set of structural tags (p, code, pre, li, ol,
// ul, sub, sup) are collected into the section that is current at that
// point. Headings nested inside other elements end their section when the
// enclosing element closes, and content resumes in the section that was
// current before. Scripts, styles, objects and subtrees marked with
// data-search-exclude never contribute text.
package html

import (
	"errors"
	"io"
	"strings"

	"github.com/fwojciec/sitesearch"
	"golang.org/x/net/html"
)

// Default limits of a Sectionizer.
const (
	DefaultMaxBytes    = 8 << 20
	DefaultMaxDepth    = 512
	DefaultMaxSections = 10000
)

// Ensure Sectionizer implements sitesearch.Sectionizer at compile time.
var _ sitesearch.Sectionizer = (*Sectionizer)(nil)

// Sectionizer implements sitesearch.Sectionizer.
//
// A Sectionizer holds no per-document state and is safe for concurrent use.
type Sectionizer struct {
	// MaxBytes limits the size of a document. Zero uses DefaultMaxBytes,
	// a negative value disables the limit.
	MaxBytes int

	// MaxDepth limits the number of simultaneously open elements.
	// Zero uses DefaultMaxDepth, a negative value disables the limit.
	MaxDepth int

	// MaxSections limits the number of sections in a document.
	// Zero uses DefaultMaxSections, a negative value disables the limit.
	MaxSections int
}

// NewSectionizer creates a Sectionizer with default limits.
func NewSectionizer() *Sectionizer {
	return &Sectionizer{}
}

// Sectionize divides doc into search items in document order.
// Returns ETOOCOMPLEX if doc exceeds one of the limits.
func (s *Sectionizer) Sectionize(doc string) ([]sitesearch.SearchItem, error) {
	if maxBytes := limit(s.MaxBytes, DefaultMaxBytes); maxBytes > 0 && len(doc) > maxBytes {
		return nil, sitesearch.Errorf(sitesearch.ETOOCOMPLEX,
			"document too complex to index: %d bytes exceeds %d", len(doc), maxBytes)
	}

	p := newParser(limit(s.MaxDepth, DefaultMaxDepth), limit(s.MaxSections, DefaultMaxSections))
	z := html.NewTokenizer(strings.NewReader(doc))
	for {
		var err error
		switch z.Next() {
		case html.ErrorToken:
			if err := z.Err(); !errors.Is(err, io.EOF) {
				return nil, sitesearch.Errorf(sitesearch.EINTERNAL, "tokenize document: %v", err)
			}
			return p.items(), nil
		case html.StartTagToken:
			tag, attrs := readTag(z)
			// Only script and style hold raw text. Fallback content of
			// noscript, iframe and similar elements is parsed as markup.
			if tag != "script" && tag != "style" {
				z.NextIsNotRawText()
			}
			err = p.startTag(tag, attrs)
		case html.SelfClosingTagToken:
			tag, attrs := readTag(z)
			if err = p.startTag(tag, attrs); err == nil {
				p.endTag(tag)
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			p.endTag(string(name))
		case html.TextToken:
			err = p.text(string(z.Text()))
		}
		if err != nil {
			return nil, err
		}
	}
}

// readTag returns the name and attributes of the current tag token.
// Later duplicates of an attribute win.
func readTag(z *html.Tokenizer) (string, map[string]string) {
	name, more := z.TagName()
	tag := string(name)
	attrs := make(map[string]string)
	for more {
		var key, val []byte
		key, val, more = z.TagAttr()
		attrs[string(key)] = string(val)
	}
	return tag, attrs
}

// limit resolves a configured limit: zero selects the default, negative
// values disable the limit.
func limit(configured, def int) int {
	if configured == 0 {
		return def
	}
	if configured < 0 {
		return 0
	}
	return configured
}
