package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/sitesearch"
	"github.com/fwojciec/sitesearch/toml"
	"github.com/fwojciec/sitesearch/yaml"
)

// configFiles are tried in order when no config path is given.
var configFiles = []string{"zensical.toml", "sitesearch.toml", "mkdocs.yml", "mkdocs.yaml"}

// loadConfig reads the project config at path, or the first config file
// found in the working directory when path is empty. Relative docs and
// site directories are resolved against the directory of the config file,
// whose absolute path is returned alongside the config.
func loadConfig(path string) (*sitesearch.Config, string, error) {
	if path == "" {
		for _, name := range configFiles {
			if _, err := os.Stat(name); err == nil {
				path = name
				break
			}
		}
		if path == "" {
			return nil, "", sitesearch.Errorf(sitesearch.ENOTFOUND,
				"no config file found (tried %s)", strings.Join(configFiles, ", "))
		}
	}

	var cfg *sitesearch.Config
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		cfg, err = toml.LoadConfig(path)
	case ".yml", ".yaml":
		cfg, err = yaml.LoadConfig(path)
	default:
		return nil, "", sitesearch.Errorf(sitesearch.EINVALID, "unsupported config format: %s", path)
	}
	if err != nil {
		return nil, "", err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, "", err
	}
	root := filepath.Dir(abs)
	cfg.DocsDir = resolveDir(root, cfg.DocsDir)
	cfg.SiteDir = resolveDir(root, cfg.SiteDir)
	return cfg, abs, nil
}

func resolveDir(root, dir string) string {
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(root, dir)
}
