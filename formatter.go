package sitesearch

import (
	"fmt"
	"strings"
)

// FormatItems formats search items for display.
// Items without a location are labelled with "#" only.
// Items are separated by blank lines.
func FormatItems(items []SearchItem) string {
	if len(items) == 0 {
		return ""
	}

	parts := make([]string, 0, len(items))
	for _, item := range items {
		header := fmt.Sprintf("## h%d #%s %s", item.Level, item.Anchor(), item.Title)
		if item.Text == "" {
			parts = append(parts, header)
			continue
		}
		parts = append(parts, header+"\n"+item.Text)
	}

	return strings.Join(parts, "\n\n")
}
