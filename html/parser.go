package html

import (
	"math"
	"strings"

	"github.com/fwojciec/sitesearch"
)

// retired marks a section whose enclosing element was closed. A retired
// section never receives content again.
const retired = math.MaxInt

// section is a heading together with the content that follows it.
type section struct {
	anchor element
	level  int
	depth  int
	title  []string
	text   []string
	id     *string
}

// parser holds the state of a single sectionizing pass.
type parser struct {
	// context holds the open non-void elements, outermost first.
	context []element

	// current receives content. Nil until the first section exists.
	current *section

	// skip holds the tags whose subtrees are currently excluded.
	skip map[string]struct{}

	// sections holds every section created, in document order.
	sections []*section

	maxDepth    int
	maxSections int
}

func newParser(maxDepth, maxSections int) *parser {
	skip := make(map[string]struct{}, len(seedSkipTags))
	for tag := range seedSkipTags {
		skip[tag] = struct{}{}
	}
	return &parser{
		skip:        skip,
		maxDepth:    maxDepth,
		maxSections: maxSections,
	}
}

// startTag handles an opening tag.
func (p *parser) startTag(tag string, attrs map[string]string) error {
	if voidTags[tag] {
		return nil
	}
	if p.maxDepth > 0 && len(p.context) >= p.maxDepth {
		return sitesearch.Errorf(sitesearch.ETOOCOMPLEX,
			"document too complex to index: nesting exceeds %d elements", p.maxDepth)
	}

	el := element{tag: tag, attrs: attrs}
	p.context = append(p.context, el)

	if level := headingLevel(tag); level > 0 && el.has("id") {
		depth := len(p.context)

		// Sub-headings always get a top-level section in front of them.
		if tag != "h1" && len(p.sections) == 0 {
			if err := p.appendSection(&section{anchor: element{tag: prefaceTag}, level: 1, depth: depth}); err != nil {
				return err
			}
		}

		// The first section of a page is addressed by the page itself.
		sec := &section{anchor: el, level: level, depth: depth}
		if len(p.sections) > 0 {
			id := el.attr("id")
			sec.id = &id
		}
		if err := p.appendSection(sec); err != nil {
			return err
		}
	}

	if err := p.ensureSection(); err != nil {
		return err
	}

	if el.excluded() {
		p.skip[tag] = struct{}{}
		return nil
	}

	if !p.skipping() && keepTags[tag] {
		buf := p.buffer()
		*buf = append(*buf, "<"+tag+">")
	}
	return nil
}

// endTag handles a closing tag. Closing tags that do not match the
// innermost open element are ignored.
func (p *parser) endTag(tag string) {
	n := len(p.context)
	if n == 0 || p.context[n-1].tag != tag {
		return
	}

	// Closing an element that encloses the current heading ends its
	// section. Content continues in the nearest section that is still
	// open at this depth, which may lie several sections back.
	if p.current != nil && p.current.depth > n {
		for i := len(p.sections) - 1; i >= 0; i-- {
			if p.sections[i].depth <= n {
				p.current.depth = retired
				p.current = p.sections[i]
				break
			}
		}
	}

	el := p.context[n-1]
	p.context = p.context[:n-1]

	if _, ok := p.skip[el.tag]; ok {
		if !seedSkipTags[el.tag] {
			delete(p.skip, el.tag)
		}
		return
	}

	if p.skipping() || !keepTags[tag] || p.current == nil {
		return
	}
	closeMarkup(p.buffer(), tag)
}

// text handles character data.
func (p *parser) text(data string) error {
	if p.skipping() {
		return nil
	}

	pre := p.isOpen("pre")
	if !pre {
		if isSpace(data) {
			data = " "
		} else {
			data = strings.ReplaceAll(data, "\n", " ")
		}
	}

	if err := p.ensureSection(); err != nil {
		return err
	}

	if p.isOpen(p.current.anchor.tag) {
		if !p.inPermalink() {
			p.current.title = append(p.current.title, escaper.Replace(data))
		}
		return nil
	}

	if isSpace(data) {
		text := p.current.text
		if len(text) == 0 || !isSpace(text[len(text)-1]) || pre {
			p.current.text = append(text, data)
		}
		return nil
	}

	p.current.text = append(p.current.text, escaper.Replace(data))
	return nil
}

// items returns the search items of all sections that are not excluded.
func (p *parser) items() []sitesearch.SearchItem {
	items := make([]sitesearch.SearchItem, 0, len(p.sections))
	for _, sec := range p.sections {
		if sec.anchor.has("data-search-exclude") {
			continue
		}
		items = append(items, sitesearch.SearchItem{
			Location: sec.id,
			Level:    sec.level,
			Title:    strings.TrimSpace(strings.Join(sec.title, "")),
			Text:     strings.TrimSpace(strings.Join(sec.text, "")),
			Path:     []string{},
			Tags:     []string{},
		})
	}
	return items
}

// appendSection adds sec to the section list and makes it current.
func (p *parser) appendSection(sec *section) error {
	if p.maxSections > 0 && len(p.sections) >= p.maxSections {
		return sitesearch.Errorf(sitesearch.ETOOCOMPLEX,
			"document too complex to index: more than %d sections", p.maxSections)
	}
	p.sections = append(p.sections, sec)
	p.current = sec
	return nil
}

// ensureSection creates the preface section if no section exists yet.
func (p *parser) ensureSection() error {
	if p.current != nil {
		return nil
	}
	return p.appendSection(&section{anchor: element{tag: prefaceTag}, level: 1})
}

// buffer returns the fragments that receive markup: the title while the
// heading of the current section is open, the text otherwise.
func (p *parser) buffer() *[]string {
	if p.isOpen(p.current.anchor.tag) {
		return &p.current.title
	}
	return &p.current.text
}

// skipping reports whether any open element is in the skip set.
func (p *parser) skipping() bool {
	for _, el := range p.context {
		if _, ok := p.skip[el.tag]; ok {
			return true
		}
	}
	return false
}

// isOpen reports whether an element with the given tag is open.
func (p *parser) isOpen(tag string) bool {
	for _, el := range p.context {
		if el.tag == tag {
			return true
		}
	}
	return false
}

// inPermalink reports whether the parser is inside a heading permalink.
func (p *parser) inPermalink() bool {
	for _, el := range p.context {
		if el.tag == "a" && el.attr("class") == "headerlink" {
			return true
		}
	}
	return false
}

// closeMarkup appends the closing tag to buf, or removes the element
// entirely if nothing but whitespace was written since its opening tag.
func closeMarkup(buf *[]string, tag string) {
	data := *buf
	marker := "<" + tag + ">"
	for i := len(data) - 1; i >= 0; i-- {
		if data[i] != marker {
			continue
		}
		for _, frag := range data[i+1:] {
			if !isSpace(frag) {
				*buf = append(data, "</"+tag+">")
				return
			}
		}
		*buf = data[:i]
		return
	}
	*buf = append(data, "</"+tag+">")
}
