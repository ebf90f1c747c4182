// Package fs reads documentation pages from disk and writes the search index.
package fs

import (
	"net/url"
	"path"
	"strings"
)

// sitePath maps a site-relative URL to the HTML file serving it.
// Example: guide/ → guide/index.html, guide/install → guide/install/index.html
func sitePath(rel string) string {
	if rel == "" || strings.HasSuffix(rel, "/") {
		return rel + "index.html"
	}
	if path.Ext(rel) == ".html" {
		return rel
	}
	return rel + "/index.html"
}

// siteURL maps an HTML file below the site directory to its site-relative URL.
// Example: guide/index.html → guide/ with directory URLs.
func siteURL(rel string, useDirectoryURLs bool) string {
	if useDirectoryURLs && path.Base(rel) == "index.html" {
		return strings.TrimSuffix(rel, "index.html")
	}
	return rel
}

// relativeURL returns the path of loc relative to base, or false if loc
// points outside of the site.
func relativeURL(loc string, base *url.URL) (string, bool) {
	u, err := url.Parse(strings.TrimSpace(loc))
	if err != nil {
		return "", false
	}
	if u.IsAbs() && u.Host != base.Host {
		return "", false
	}

	prefix := base.Path
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	p := u.Path
	if p+"/" == prefix {
		p = prefix
	}
	if !strings.HasPrefix(p, prefix) {
		return "", false
	}
	return strings.TrimPrefix(p, prefix), true
}
