// Package goldmark renders Markdown pages with github.com/yuin/goldmark.
package goldmark

import (
	"bytes"
	"context"
	"fmt"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/fwojciec/sitesearch"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// Ensure Renderer implements sitesearch.Renderer at compile time.
var _ sitesearch.Renderer = (*Renderer)(nil)

// Renderer implements sitesearch.Renderer using goldmark.
type Renderer struct {
	md goldmark.Markdown
}

// NewRenderer creates a Renderer with GFM extensions, heading ids and
// syntax highlighting.
func NewRenderer() *Renderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Footnote,
			highlighting.NewHighlighting(
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true),
				),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
			parser.WithAttribute(), // ## Heading {#custom-id}
		),
		goldmark.WithRendererOptions(
			// Raw HTML carries data-search-exclude markers.
			html.WithUnsafe(),
		),
	)
	return &Renderer{md: md}
}

// Render converts Markdown source into a page. Front matter supplies the
// page title, tags and the search exclusion flag.
func (r *Renderer) Render(ctx context.Context, sourcePath string, source []byte) (*sitesearch.Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	block, body := splitFrontMatter(source)
	meta := parseFrontMatter(block)

	var buf bytes.Buffer
	if err := r.md.Convert(body, &buf); err != nil {
		return nil, fmt.Errorf("render %s: %w", sourcePath, err)
	}

	return &sitesearch.Page{
		SourcePath: sourcePath,
		Title:      meta.Title,
		HTML:       buf.String(),
		Meta:       meta,
	}, nil
}
