package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/sitesearch"
)

// Ensure Detector implements sitesearch.GeneratorDetector at compile time.
var _ sitesearch.GeneratorDetector = (*Detector)(nil)

// generatorMarkers lists selectors unique to the output of each generator.
// Order matters: VitePress pages also match some VuePress markers.
var generatorMarkers = []struct {
	generator sitesearch.Generator
	selectors []string
}{
	{sitesearch.GeneratorDocusaurus, []string{
		"#__docusaurus_skipToContent_fallback",
		".theme-doc-sidebar-container",
		"[data-rh][data-theme]",
	}},
	{sitesearch.GeneratorMkDocs, []string{
		"[data-md-color-scheme]",
		"[data-md-component]",
		".md-content",
	}},
	{sitesearch.GeneratorSphinx, []string{
		".toctree-wrapper",
		".wy-nav-side",
		".sphinxsidebar",
	}},
	{sitesearch.GeneratorVitePress, []string{
		"#VPContent",
		".VPDoc",
	}},
	{sitesearch.GeneratorVuePress, []string{
		".theme-default-content",
		".vuepress-navbar",
	}},
	{sitesearch.GeneratorGitBook, []string{
		"[data-testid='space.sidebar']",
		"[data-testid='page.desktopTableOfContents']",
	}},
	{sitesearch.GeneratorNextra, []string{
		".nextra-navbar",
		".nextra-sidebar",
		".nextra-toc",
	}},
}

// Detector identifies site generators from framework-specific CSS classes,
// data attributes and meta generator tags.
type Detector struct{}

// NewDetector creates a new Detector.
func NewDetector() *Detector {
	return &Detector{}
}

// Detect parses html and returns the identified generator.
func (d *Detector) Detect(html string) sitesearch.Generator {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return sitesearch.GeneratorUnknown
	}
	return d.detect(doc)
}

func (d *Detector) detect(doc *goquery.Document) sitesearch.Generator {
	// The meta generator tag is the most reliable signal when present.
	if g := generatorFromMeta(doc); g != sitesearch.GeneratorUnknown {
		return g
	}
	for _, m := range generatorMarkers {
		for _, sel := range m.selectors {
			if doc.Find(sel).Length() > 0 {
				return m.generator
			}
		}
	}
	return sitesearch.GeneratorUnknown
}

func generatorFromMeta(doc *goquery.Document) sitesearch.Generator {
	content, _ := doc.Find("meta[name='generator']").Last().Attr("content")
	content = strings.ToLower(content)
	if content == "" {
		return sitesearch.GeneratorUnknown
	}

	for _, g := range []sitesearch.Generator{
		sitesearch.GeneratorSphinx,
		sitesearch.GeneratorGitBook,
		sitesearch.GeneratorDocusaurus,
		sitesearch.GeneratorMkDocs,
		sitesearch.GeneratorVitePress,
		sitesearch.GeneratorVuePress,
		sitesearch.GeneratorNextra,
	} {
		if strings.Contains(content, string(g)) {
			return g
		}
	}
	return sitesearch.GeneratorUnknown
}
