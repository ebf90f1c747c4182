package mock

import (
	"context"

	"github.com/fwojciec/sitesearch"
)

// Compile-time interface verification.
var (
	_ sitesearch.Renderer          = (*Renderer)(nil)
	_ sitesearch.PageReader        = (*PageReader)(nil)
	_ sitesearch.PageSource        = (*PageSource)(nil)
	_ sitesearch.GeneratorDetector = (*GeneratorDetector)(nil)
)

// Renderer is a mock implementation of sitesearch.Renderer.
type Renderer struct {
	RenderFn func(ctx context.Context, sourcePath string, source []byte) (*sitesearch.Page, error)
}

func (r *Renderer) Render(ctx context.Context, sourcePath string, source []byte) (*sitesearch.Page, error) {
	return r.RenderFn(ctx, sourcePath, source)
}

// PageReader is a mock implementation of sitesearch.PageReader.
type PageReader struct {
	ReadPageFn func(html string) (*sitesearch.Page, error)
}

func (r *PageReader) ReadPage(html string) (*sitesearch.Page, error) {
	return r.ReadPageFn(html)
}

// PageSource is a mock implementation of sitesearch.PageSource.
type PageSource struct {
	PagesFn func(ctx context.Context) ([]*sitesearch.Page, error)
}

func (s *PageSource) Pages(ctx context.Context) ([]*sitesearch.Page, error) {
	return s.PagesFn(ctx)
}

// GeneratorDetector is a mock implementation of sitesearch.GeneratorDetector.
type GeneratorDetector struct {
	DetectFn func(html string) sitesearch.Generator
}

func (d *GeneratorDetector) Detect(html string) sitesearch.Generator {
	return d.DetectFn(html)
}
