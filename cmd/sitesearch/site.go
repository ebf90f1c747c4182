package main

import (
	"fmt"

	"github.com/fwojciec/sitesearch/fs"
)

// Run executes the site command.
func (c *SiteCmd) Run(deps *Dependencies) error {
	if !deps.Config.Search.Enabled {
		fmt.Fprintln(deps.Stdout, "Search plugin disabled, nothing to index.")
		return nil
	}

	source := fs.NewSiteSource(deps.Config.SiteDir, deps.Reader)
	source.SiteURL = deps.Config.SiteURL
	source.UseDirectoryURLs = deps.Config.UseDirectoryURLs

	_, err := runBuild(deps, source, c.Concurrency)
	return err
}
