// Package yaml loads project configuration from MkDocs-style YAML files.
package yaml

import (
	"errors"
	"io/fs"
	"os"

	"github.com/fwojciec/sitesearch"
	"github.com/goccy/go-yaml"
)

// MaxConfigSize limits the size of a configuration document.
var MaxConfigSize = 1 << 20

// LoadConfig reads and validates the configuration file at path.
func LoadConfig(path string) (*sitesearch.Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, sitesearch.Errorf(sitesearch.ENOTFOUND, "config file not found: %s", path)
	} else if err != nil {
		return nil, err
	}
	return ParseConfig(data)
}

// ParseConfig decodes a YAML configuration document.
func ParseConfig(data []byte) (*sitesearch.Config, error) {
	if len(data) > MaxConfigSize {
		return nil, sitesearch.Errorf(sitesearch.EINVALID, "config exceeds %d bytes", MaxConfigSize)
	}

	var m map[string]any
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, sitesearch.Errorf(sitesearch.EINVALID, "parse config: %v", err)
	}
	if m == nil {
		m = make(map[string]any)
	}
	return sitesearch.ConfigFromMap(m)
}
