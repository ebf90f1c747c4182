package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/fwojciec/sitesearch/fsnotify"
)

// Run executes the watch command. It builds once, then rebuilds after every
// burst of changes to the Markdown sources until interrupted.
func (c *WatchCmd) Run(deps *Dependencies) error {
	if !deps.Config.Search.Enabled {
		fmt.Fprintln(deps.Stdout, "Search plugin disabled, nothing to index.")
		return nil
	}

	if _, err := runBuild(deps, docsSource(deps), c.Concurrency); err != nil {
		return err
	}

	watcher := fsnotify.NewWatcher(deps.Config.DocsDir)
	watcher.Debounce = c.Debounce
	watcher.Ready = c.Ready

	fmt.Fprintf(deps.Stdout, "Watching %s for changes\n", deps.Config.DocsDir)
	return watcher.Watch(deps.Ctx, func(ctx context.Context, paths []string) error {
		fmt.Fprintf(deps.Stdout, "Changed: %s\n", strings.Join(paths, ", "))
		// Failed rebuilds are reported and the previous index stays in place.
		_, _ = runBuild(deps, docsSource(deps), c.Concurrency)
		return nil
	})
}
