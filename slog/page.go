package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/sitesearch"
)

// Compile-time interface verification.
var (
	_ sitesearch.PageSource = (*LoggingPageSource)(nil)
	_ sitesearch.PageReader = (*LoggingPageReader)(nil)
)

// LoggingPageSource wraps a PageSource with debug logging.
type LoggingPageSource struct {
	next   sitesearch.PageSource
	logger *slog.Logger
}

// NewLoggingPageSource creates a new LoggingPageSource.
func NewLoggingPageSource(next sitesearch.PageSource, logger *slog.Logger) *LoggingPageSource {
	return &LoggingPageSource{next: next, logger: logger}
}

// Pages delegates to the wrapped source and logs the number of pages found.
func (s *LoggingPageSource) Pages(ctx context.Context) (pages []*sitesearch.Page, err error) {
	defer func(begin time.Time) {
		s.logger.Info("list pages",
			"count", len(pages),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Pages(ctx)
}

// LoggingPageReader wraps a PageReader with debug logging for generator
// detection.
type LoggingPageReader struct {
	next     sitesearch.PageReader
	detector sitesearch.GeneratorDetector
	logger   *slog.Logger
}

// NewLoggingPageReader creates a new LoggingPageReader.
func NewLoggingPageReader(next sitesearch.PageReader, detector sitesearch.GeneratorDetector, logger *slog.Logger) *LoggingPageReader {
	return &LoggingPageReader{next: next, detector: detector, logger: logger}
}

// ReadPage detects the generator, logs it, and delegates to the wrapped reader.
func (r *LoggingPageReader) ReadPage(html string) (page *sitesearch.Page, err error) {
	begin := time.Now()
	generator := r.detector.Detect(html)
	name := string(generator)
	if generator == sitesearch.GeneratorUnknown {
		name = "(unknown)"
	}
	r.logger.Info("generator detection",
		"generator", name,
		"duration", time.Since(begin),
	)

	page, err = r.next.ReadPage(html)
	if err != nil {
		r.logger.Info("read page", "err", err)
	}
	return page, err
}
