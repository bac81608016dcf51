// Package config loads compiler run settings from an optional TOML file.
package config

import (
	"fmt"
	"os"
	"runtime"

	"github.com/pelletier/go-toml/v2"
)

// DefaultPath is where the driver looks for settings when no file is named
// on the command line.
const DefaultPath = "tiny.toml"

// Config controls one compiler run: where sources live, how deep the search
// goes, which files count as sources and how the AST dumps are written.
type Config struct {
	SourceRoot  string   `toml:"source_root"`
	SearchDepth int      `toml:"search_depth"`
	Patterns    []string `toml:"patterns"`
	OutDir      string   `toml:"out_dir"`
	Pretty      bool     `toml:"pretty"`
	Workers     int      `toml:"workers"`
}

// Default returns the settings used when no config file exists.
func Default() Config {
	return Config{
		SourceRoot: ".",
		Patterns:   []string{"*.ty"},
		OutDir:     "build",
		Workers:    runtime.NumCPU(),
	}
}

// Load reads the TOML file at path on top of the defaults. A missing file is
// not an error: the defaults are returned as-is so a bare checkout works
// without any setup.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	cfg.normalize()
	return cfg, nil
}

func (c *Config) normalize() {
	if c.SourceRoot == "" {
		c.SourceRoot = "."
	}
	if len(c.Patterns) == 0 {
		c.Patterns = []string{"*.ty"}
	}
	if c.OutDir == "" {
		c.OutDir = "build"
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
}
