// Package toml loads project configuration from TOML files.
package toml

import (
	"errors"
	"io/fs"
	"os"

	"github.com/fwojciec/sitesearch"
	"github.com/pelletier/go-toml/v2"
)

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

// ParseConfig decodes a TOML configuration document.
func ParseConfig(data []byte) (*sitesearch.Config, error) {
	var m map[string]any
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, sitesearch.Errorf(sitesearch.EINVALID, "parse config: %v", err)
	}
	if m == nil {
		m = make(map[string]any)
	}
	return sitesearch.ConfigFromMap(m)
}
