package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/sitesearch"
)

// Ensure LoggingSectionizer implements sitesearch.Sectionizer.
var _ sitesearch.Sectionizer = (*LoggingSectionizer)(nil)

// LoggingSectionizer wraps a Sectionizer with debug logging.
type LoggingSectionizer struct {
	next   sitesearch.Sectionizer
	logger *slog.Logger
}

// NewLoggingSectionizer creates a new LoggingSectionizer.
func NewLoggingSectionizer(next sitesearch.Sectionizer, logger *slog.Logger) *LoggingSectionizer {
	return &LoggingSectionizer{next: next, logger: logger}
}

// Sectionize delegates to the wrapped sectionizer and logs the operation.
func (s *LoggingSectionizer) Sectionize(html string) (items []sitesearch.SearchItem, err error) {
	defer func(begin time.Time) {
		s.logger.Info("sectionize",
			"bytes", len(html),
			"sections", len(items),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Sectionize(html)
}
