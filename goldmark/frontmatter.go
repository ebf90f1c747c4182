package goldmark

import (
	"bytes"
	"fmt"

	"github.com/fwojciec/sitesearch"
	"github.com/goccy/go-yaml"
)

// MaxFrontMatterSize limits the size of a front matter block. Larger blocks
// are ignored.
var MaxFrontMatterSize = 1 << 20

// splitFrontMatter separates a leading YAML block delimited by "---" lines
// from the Markdown body. It returns a nil block if the source has none.
func splitFrontMatter(source []byte) (block, body []byte) {
	rest, ok := cutLine(source, "---")
	if !ok {
		return nil, source
	}
	for off := 0; off < len(rest); {
		end := bytes.IndexByte(rest[off:], '\n')
		var line []byte
		if end < 0 {
			line = rest[off:]
			end = len(rest)
		} else {
			line = rest[off : off+end]
			end = off + end + 1
		}
		switch string(bytes.TrimRight(line, " \t\r")) {
		case "---", "...":
			return rest[:off], rest[end:]
		}
		off = end
	}
	return nil, source
}

// cutLine reports whether the first line of b equals line and returns the
// remainder.
func cutLine(b []byte, line string) ([]byte, bool) {
	first, rest, found := bytes.Cut(b, []byte("\n"))
	if !found || string(bytes.TrimRight(first, " \t\r")) != line {
		return nil, false
	}
	return rest, true
}

// parseFrontMatter decodes block into page metadata. Blocks that are too
// large, malformed or not a mapping yield empty metadata. Each setting is
// read on its own, so a mistyped field does not hide the others.
func parseFrontMatter(block []byte) sitesearch.PageMeta {
	if len(block) == 0 || len(block) > MaxFrontMatterSize {
		return sitesearch.PageMeta{}
	}
	var fm map[string]any
	if err := yaml.Unmarshal(block, &fm); err != nil {
		return sitesearch.PageMeta{}
	}

	var meta sitesearch.PageMeta
	if title, ok := scalar(fm["title"]); ok {
		meta.Title = title
	}
	meta.Tags = tagList(fm["tags"])
	if search, ok := fm["search"].(map[string]any); ok {
		meta.SearchExclude, _ = search["exclude"].(bool)
	}
	return meta
}

// tagList accepts a list of tags or a single scalar tag.
func tagList(v any) []string {
	switch v := v.(type) {
	case []any:
		tags := make([]string, 0, len(v))
		for _, item := range v {
			if tag, ok := scalar(item); ok && tag != "" {
				tags = append(tags, tag)
			}
		}
		return tags
	default:
		if tag, ok := scalar(v); ok && tag != "" {
			return []string{tag}
		}
		return nil
	}
}

// scalar formats a YAML scalar as a string. Mappings, sequences and null
// are rejected.
func scalar(v any) (string, bool) {
	switch v := v.(type) {
	case string:
		return v, true
	case bool, int, int64, uint64, float64:
		return fmt.Sprint(v), true
	default:
		return "", false
	}
}
