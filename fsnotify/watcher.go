// Package fsnotify rebuilds on changes to Markdown sources using
// github.com/fsnotify/fsnotify.
package fsnotify

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period after the last change before the
// rebuild callback runs.
const DefaultDebounce = 250 * time.Millisecond

// ChangeFunc is called with the source paths, relative to the watched
// directory, that changed since the previous call.
type ChangeFunc func(ctx context.Context, paths []string) error

// Watcher watches a docs directory tree for changes to Markdown files.
type Watcher struct {
	dir string

	// Debounce is the quiet period before OnChange runs.
	// Zero uses DefaultDebounce.
	Debounce time.Duration

	// Ready, if set, is closed once the directory tree is being watched.
	Ready chan struct{}
}

// NewWatcher creates a Watcher for dir.
func NewWatcher(dir string) *Watcher {
	return &Watcher{dir: dir}
}

// Watch blocks until ctx is cancelled, calling fn after each burst of
// changes. Directories created while watching are added automatically.
// Returns nil on cancellation, or the first error from fn or the
// underlying watcher.
func (w *Watcher) Watch(ctx context.Context, fn ChangeFunc) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if _, err := w.addTree(watcher, w.dir); err != nil {
		return err
	}
	if w.Ready != nil {
		close(w.Ready)
	}

	debounce := w.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	timer := time.NewTimer(debounce)
	timer.Stop()

	pending := make(map[string]struct{})
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Create) && isDir(event.Name) {
				if hidden(filepath.Base(event.Name)) {
					continue
				}
				// Files may land in a new directory before it is watched.
				files, err := w.addTree(watcher, event.Name)
				if err != nil {
					return err
				}
				for _, name := range files {
					pending[w.rel(name)] = struct{}{}
				}
				if len(files) > 0 {
					timer.Reset(debounce)
				}
				continue
			}
			if !relevant(event) {
				continue
			}
			pending[w.rel(event.Name)] = struct{}{}
			timer.Reset(debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return err

		case <-timer.C:
			if len(pending) == 0 {
				continue
			}
			paths := make([]string, 0, len(pending))
			for p := range pending {
				paths = append(paths, p)
			}
			slices.Sort(paths)
			clear(pending)
			if err := fn(ctx, paths); err != nil {
				return err
			}
		}
	}
}

// addTree adds root and every non-hidden directory below it. Returns the
// Markdown files already present in the tree.
func (w *Watcher) addTree(watcher *fsnotify.Watcher, root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path != root && hidden(d.Name()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.IsDir() {
			if isMarkdown(d.Name()) {
				files = append(files, path)
			}
			return nil
		}
		return watcher.Add(path)
	})
	return files, err
}

// rel returns name relative to the watched directory, in slash form.
func (w *Watcher) rel(name string) string {
	rel, err := filepath.Rel(w.dir, name)
	if err != nil {
		return filepath.ToSlash(name)
	}
	return filepath.ToSlash(rel)
}

// relevant reports whether event touches a visible Markdown file.
func relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}
	name := filepath.Base(event.Name)
	return !hidden(name) && isMarkdown(name)
}

func isMarkdown(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".md")
}

func hidden(name string) bool {
	return strings.HasPrefix(name, ".")
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
