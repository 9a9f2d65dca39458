// Package config loads and validates the project seed configuration
// and tracks summarizer/database version compatibility.
package config

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed seed.schema.json
var seedSchema []byte

// SeedCategory is one license category from the seed file, with the
// license short names that start out in it.
type SeedCategory struct {
	ID       int      `json:"id"`
	Name     string   `json:"name"`
	Licenses []string `json:"licenses"`
}

// SeedConfig is the JSON seed file used to initialize a new database:
// project settings, the category/license taxonomy, and known raw-text
// conversions (old text => license short name).
type SeedConfig struct {
	Config      map[string]string `json:"config"`
	Categories  []SeedCategory    `json:"categories"`
	Conversions map[string]string `json:"conversions"`
}

// Project returns the project name from the seed settings, or "".
func (c *SeedConfig) Project() string {
	return c.Config["project"]
}

// LoadSeedConfig reads and validates a seed configuration file.
func LoadSeedConfig(path string) (*SeedConfig, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(seedSchema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to validate config JSON: %w", err)
	}
	if !result.Valid() {
		return nil, fmt.Errorf("config file %s is invalid: %s", path, result.Errors()[0])
	}

	var cfg SeedConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if cfg.Project() == "" {
		return nil, fmt.Errorf("config file %s has no project name", path)
	}

	return &cfg, nil
}
