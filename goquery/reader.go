package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/sitesearch"
)

// Ensure PageReader implements sitesearch.PageReader at compile time.
var _ sitesearch.PageReader = (*PageReader)(nil)

// contentSelectors lists where each generator puts the page content, most
// specific first.
var contentSelectors = map[sitesearch.Generator][]string{
	sitesearch.GeneratorMkDocs:     {"article.md-content__inner", ".md-content"},
	sitesearch.GeneratorDocusaurus: {".theme-doc-markdown", "article"},
	sitesearch.GeneratorSphinx:     {"[role='main']", "div.body", "div.document"},
	sitesearch.GeneratorVitePress:  {".vp-doc", ".VPDoc"},
	sitesearch.GeneratorVuePress:   {".theme-default-content"},
	sitesearch.GeneratorGitBook:    {"main"},
	sitesearch.GeneratorNextra:     {"article", "main"},
}

// fallbackSelectors are tried when the generator is unknown or none of its
// selectors match.
var fallbackSelectors = []string{
	"article.md-content__inner",
	".md-content",
	"article",
	"main",
	"body",
}

// PageReader implements sitesearch.PageReader for pages built by common
// documentation generators.
type PageReader struct {
	detector *Detector

	// SiteName is removed from titles of the form "Page - SiteName".
	SiteName string
}

// NewPageReader creates a PageReader for a site named siteName.
func NewPageReader(siteName string) *PageReader {
	return &PageReader{detector: NewDetector(), SiteName: siteName}
}

// ReadPage limits html to its content region and extracts title, tags and
// the page-level search exclusion flag.
func (r *PageReader) ReadPage(html string) (*sitesearch.Page, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, sitesearch.Errorf(sitesearch.EINVALID, "failed to parse HTML: %v", err)
	}

	content := r.content(doc)
	body, err := content.Html()
	if err != nil {
		return nil, sitesearch.Errorf(sitesearch.EINVALID, "failed to render content: %v", err)
	}

	meta := sitesearch.PageMeta{
		Title:         r.title(doc, content),
		Tags:          tags(doc),
		SearchExclude: excluded(doc),
	}
	return &sitesearch.Page{
		Title: meta.Title,
		HTML:  strings.TrimSpace(body),
		Meta:  meta,
	}, nil
}

// content returns the first element holding the page content.
func (r *PageReader) content(doc *goquery.Document) *goquery.Selection {
	for _, selectors := range [][]string{contentSelectors[r.detector.detect(doc)], fallbackSelectors} {
		for _, sel := range selectors {
			if s := doc.Find(sel).First(); s.Length() > 0 {
				return s
			}
		}
	}
	return doc.Selection
}

// title returns the document title without the site name suffix, or the
// text of the first h1 of the content if the document has no title.
func (r *PageReader) title(doc *goquery.Document, content *goquery.Selection) string {
	title := strings.TrimSpace(doc.Find("head title").First().Text())
	if r.SiteName != "" {
		if title == r.SiteName {
			title = ""
		}
		title = strings.TrimSpace(strings.TrimSuffix(title, " - "+r.SiteName))
	}
	if title != "" {
		return title
	}

	h1 := content.Find("h1").First().Clone()
	h1.Find(".headerlink").Remove()
	return strings.TrimSpace(h1.Text())
}

// tags collects tags from rendered tag chips and the keywords meta tag,
// in document order and without duplicates.
func tags(doc *goquery.Document) []string {
	var result []string
	seen := make(map[string]bool)
	add := func(tag string) {
		tag = strings.TrimSpace(tag)
		if tag == "" || seen[tag] {
			return
		}
		seen[tag] = true
		result = append(result, tag)
	}

	doc.Find(".md-tag").Each(func(_ int, s *goquery.Selection) {
		add(s.Text())
	})
	if keywords, ok := doc.Find("meta[name='keywords']").First().Attr("content"); ok {
		for _, kw := range strings.Split(keywords, ",") {
			add(kw)
		}
	}
	return result
}

// excluded reports whether the whole page is marked as excluded from search.
func excluded(doc *goquery.Document) bool {
	return doc.Find("meta[name='search-exclude']").Length() > 0 ||
		doc.Find("body[data-search-exclude]").Length() > 0
}
