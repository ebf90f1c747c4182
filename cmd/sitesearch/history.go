package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/sitesearch"
)

// Run executes the history command.
func (c *HistoryCmd) Run(deps *Dependencies) error {
	if deps.Cache == nil {
		err := sitesearch.Errorf(sitesearch.EINVALID, "build history is stored in the cache, which is disabled")
		fmt.Fprintf(deps.Stderr, "error: %s\n", sitesearch.ErrorMessage(err))
		return err
	}

	builds, err := deps.Cache.FindBuilds(deps.Ctx, sitesearch.BuildFilter{Limit: c.Limit})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sitesearch.ErrorMessage(err))
		return err
	}

	if len(builds) == 0 {
		fmt.Fprintln(deps.Stdout, "No builds recorded. Use 'sitesearch build' to create one.")
		return nil
	}

	for _, b := range builds {
		fmt.Fprintf(deps.Stdout, "%s  %s  %d pages  %d items  %d cached  %d failed\n",
			b.ID, b.CreatedAt.Local().Format(time.DateTime), b.Pages, b.Items, b.Cached, b.Failed)
	}
	return nil
}
