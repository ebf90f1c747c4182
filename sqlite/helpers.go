package sqlite

import (
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/sitesearch"
)

// timestamp formats t the way the cache stores times: UTC, second precision.
func timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// parseTimestamp reads a time written by timestamp. column names the source
// of value in the error.
func parseTimestamp(value, column string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse %s: %w", column, err)
	}
	return t, nil
}

// appendBuildPage restricts a builds query to the window of filter.
// SQLite only accepts OFFSET after LIMIT, so an offset alone uses LIMIT -1.
func appendBuildPage(query *strings.Builder, args *[]any, filter sitesearch.BuildFilter) {
	switch {
	case filter.Limit > 0:
		query.WriteString(" LIMIT ?")
		*args = append(*args, filter.Limit)
	case filter.Offset > 0:
		query.WriteString(" LIMIT -1")
	}
	if filter.Offset > 0 {
		query.WriteString(" OFFSET ?")
		*args = append(*args, filter.Offset)
	}
}
