package fs

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fwojciec/sitesearch"
)

// Ensure IndexWriter implements sitesearch.IndexWriter at compile time.
var _ sitesearch.IndexWriter = (*IndexWriter)(nil)

// IndexWriter writes the search index as JSON.
//
// The index is written to a temporary file in the target directory and
// renamed into place, so readers never observe a partial index.
type IndexWriter struct {
	path string
}

// NewIndexWriter creates an IndexWriter for the file at path.
func NewIndexWriter(path string) *IndexWriter {
	return &IndexWriter{path: path}
}

// Path returns the location of the index file.
func (w *IndexWriter) Path() string {
	return w.path
}

// WriteIndex replaces the index file with index.
func (w *IndexWriter) WriteIndex(ctx context.Context, index *sitesearch.SearchIndex) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(index)
	if err != nil {
		return fmt.Errorf("encode index: %w", err)
	}

	dir := filepath.Dir(w.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(w.path)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), w.path)
}
