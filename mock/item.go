package mock

import "github.com/fwojciec/sitesearch"

var _ sitesearch.Sectionizer = (*Sectionizer)(nil)

// Sectionizer is a mock implementation of sitesearch.Sectionizer.
type Sectionizer struct {
	SectionizeFn func(html string) ([]sitesearch.SearchItem, error)
}

func (s *Sectionizer) Sectionize(html string) ([]sitesearch.SearchItem, error) {
	return s.SectionizeFn(html)
}
