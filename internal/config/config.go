// Package config loads the YAML configuration for the memocache command.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// File is the on-disk configuration. Every field has a usable default, so
// running without a config file is fine.
type File struct {
	Log  string `yaml:"log"`
	Demo Demo   `yaml:"demo"`
}

// Demo configures the demo command: which inputs to look up, the
// multiplier the value function applies, and entries seeded into the store
// before any lookup happens.
type Demo struct {
	Multiplier int         `yaml:"multiplier"`
	Inputs     []int       `yaml:"inputs"`
	Seed       []SeedEntry `yaml:"seed"`
}

// SeedEntry is one raw key/value pair installed via SetMany at startup.
type SeedEntry struct {
	Key   string `yaml:"key"`
	Value int    `yaml:"value"`
}

// Default returns the configuration used when no file is found.
func Default() File {
	return File{
		Log: "info",
		Demo: Demo{
			Multiplier: 10,
			Inputs:     []int{1, 2, 3},
		},
	}
}

// Load reads the configuration from path. An empty path falls back to the
// MEMOCACHE_CFG env variable and then to "memocache.yaml" in the working
// directory. A missing file is not an error; defaults are returned.
func Load(path string) (File, error) {
	if path == "" {
		path = os.Getenv("MEMOCACHE_CFG")
	}
	if path == "" {
		path = "memocache.yaml"
	}

	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parse config %s: %w", path, err)
	}

	// Partial files keep the defaults for whatever they leave out.
	if cfg.Log == "" {
		cfg.Log = "info"
	}
	if cfg.Demo.Multiplier == 0 {
		cfg.Demo.Multiplier = 10
	}
	if len(cfg.Demo.Inputs) == 0 {
		cfg.Demo.Inputs = []int{1, 2, 3}
	}

	return cfg, nil
}
