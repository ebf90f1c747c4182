package sitesearch

import "strings"

// DefaultSeparator is the default tokenizer separator of the search plugin.
const DefaultSeparator = `[\s\-_,:!=\[\]()\\"` + "`" + `/]+|\.(?!\d)`

// Config holds the project settings that affect search indexing.
type Config struct {
	SiteName string
	SiteURL  string

	// DocsDir holds the Markdown sources, SiteDir the built site.
	DocsDir string
	SiteDir string

	UseDirectoryURLs bool

	Search SearchPluginConfig
}

// SearchPluginConfig holds the settings of the search plugin.
type SearchPluginConfig struct {
	Enabled   bool
	Separator string
}

// NewConfig returns a Config with defaults applied.
func NewConfig(siteName string) *Config {
	return &Config{
		SiteName:         siteName,
		DocsDir:          "docs",
		SiteDir:          "site",
		UseDirectoryURLs: true,
		Search: SearchPluginConfig{
			Enabled:   true,
			Separator: DefaultSeparator,
		},
	}
}

// Validate returns an error if the config contains invalid fields.
func (c *Config) Validate() error {
	if c.SiteName == "" {
		return Errorf(EINVALID, "missing required setting: site_name")
	}
	if c.DocsDir == "" {
		return Errorf(EINVALID, "docs_dir must not be empty")
	}
	if strings.Contains(c.DocsDir, "..") {
		return Errorf(EINVALID, "docs_dir must not contain '..'")
	}
	if c.SiteDir == "" {
		return Errorf(EINVALID, "site_dir must not be empty")
	}
	if strings.Contains(c.SiteDir, "..") {
		return Errorf(EINVALID, "site_dir must not contain '..'")
	}
	return nil
}

// ConfigFromMap builds a validated Config from a decoded configuration
// document. Settings may be nested under a "project" table. Unknown
// settings are ignored.
func ConfigFromMap(m map[string]any) (*Config, error) {
	if project, ok := m["project"].(map[string]any); ok {
		m = project
	}

	siteName, err := stringSetting(m, "site_name")
	if err != nil {
		return nil, err
	} else if siteName == "" {
		return nil, Errorf(EINVALID, "missing required setting: site_name")
	}

	c := NewConfig(siteName)
	for key, dst := range map[string]*string{
		"site_url": &c.SiteURL,
		"docs_dir": &c.DocsDir,
		"site_dir": &c.SiteDir,
	} {
		v, err := stringSetting(m, key)
		if err != nil {
			return nil, err
		} else if v != "" {
			*dst = v
		}
	}
	if err := boolSetting(m, "use_directory_urls", &c.UseDirectoryURLs); err != nil {
		return nil, err
	}

	plugins, err := normalizePlugins(m["plugins"])
	if err != nil {
		return nil, err
	}
	if search, ok := plugins["search"]; ok {
		if err := boolSetting(search, "enabled", &c.Search.Enabled); err != nil {
			return nil, err
		}
		if sep, err := stringSetting(search, "separator"); err != nil {
			return nil, err
		} else if sep != "" {
			c.Search.Separator = sep
		}
	}

	// Offline sites are browsed from the file system, where directory
	// URLs do not resolve.
	if offline, ok := plugins["offline"]; ok {
		enabled := true
		if err := boolSetting(offline, "enabled", &enabled); err != nil {
			return nil, err
		}
		if enabled {
			c.UseDirectoryURLs = false
		}
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// normalizePlugins converts the accepted plugin notations into a map from
// plugin name to settings: a table keyed by name, a list of names, or a
// list of single-key tables.
func normalizePlugins(v any) (map[string]map[string]any, error) {
	plugins := make(map[string]map[string]any)
	add := func(name string, data any) error {
		switch d := data.(type) {
		case nil:
			plugins[name] = map[string]any{}
		case map[string]any:
			plugins[name] = d
		default:
			return Errorf(EINVALID, "plugins.%s must be a table", name)
		}
		return nil
	}

	switch v := v.(type) {
	case nil:
	case map[string]any:
		for name, data := range v {
			if err := add(name, data); err != nil {
				return nil, err
			}
		}
	case []any:
		for _, item := range v {
			switch item := item.(type) {
			case string:
				plugins[item] = map[string]any{}
			case map[string]any:
				for name, data := range item {
					if err := add(name, data); err != nil {
						return nil, err
					}
				}
			default:
				return nil, Errorf(EINVALID, "plugins entries must be names or tables")
			}
		}
	default:
		return nil, Errorf(EINVALID, "plugins must be a table or a list")
	}
	return plugins, nil
}

func stringSetting(m map[string]any, key string) (string, error) {
	switch v := m[key].(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	default:
		return "", Errorf(EINVALID, "%s must be a string, got %v", key, v)
	}
}

func boolSetting(m map[string]any, key string, dst *bool) error {
	switch v := m[key].(type) {
	case nil:
		return nil
	case bool:
		*dst = v
		return nil
	default:
		return Errorf(EINVALID, "%s must be a boolean, got %v", key, v)
	}
}
