package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

type propagateConfig struct {
	Widths     []int `yaml:"widths" toml:"widths"`
	Heights    []int `yaml:"heights" toml:"heights"`
	Iterations int   `yaml:"iterations" toml:"iterations"`
}

type fanoutConfig struct {
	Name           string  `yaml:"name" toml:"name"`
	Width          int     `yaml:"width" toml:"width"`
	Layers         int     `yaml:"layers" toml:"layers"`
	Sources        int     `yaml:"sources" toml:"sources"`
	StaticFraction float64 `yaml:"static_fraction" toml:"static_fraction"`
	ReadFraction   float64 `yaml:"read_fraction" toml:"read_fraction"`
	Iterations     int     `yaml:"iterations" toml:"iterations"`
}

type benchConfig struct {
	Propagate propagateConfig `yaml:"propagate" toml:"propagate"`
	Fanout    []fanoutConfig  `yaml:"fanout" toml:"fanout"`
	Repeats   int             `yaml:"repeats" toml:"repeats"`
}

func defaultConfig() *benchConfig {
	return &benchConfig{
		Propagate: propagateConfig{
			Widths:     []int{1, 10, 100, 1_000},
			Heights:    []int{1, 10, 100, 1_000},
			Iterations: 100,
		},
		Fanout: []fanoutConfig{
			{Name: "simple component", Width: 10, Layers: 5, Sources: 2, StaticFraction: 1, ReadFraction: 0.2, Iterations: 600_000},
			{Name: "dynamic component", Width: 10, Layers: 10, Sources: 6, StaticFraction: 0.75, ReadFraction: 0.2, Iterations: 15_000},
			{Name: "large web app", Width: 1000, Layers: 12, Sources: 4, StaticFraction: 0.95, ReadFraction: 1, Iterations: 7_000},
			{Name: "wide dense", Width: 1000, Layers: 5, Sources: 25, StaticFraction: 1, ReadFraction: 1, Iterations: 3_000},
			{Name: "deep", Width: 5, Layers: 500, Sources: 3, StaticFraction: 1, ReadFraction: 1, Iterations: 500},
			{Name: "very dynamic", Width: 100, Layers: 15, Sources: 6, StaticFraction: 0.5, ReadFraction: 1, Iterations: 2_000},
		},
		Repeats: 5,
	}
}

// loadConfig overlays the file at path, YAML or TOML by extension, on the
// defaults. An empty path returns the defaults.
func loadConfig(path string) (*benchConfig, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var file benchConfig
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &file)
	case ".toml":
		err = toml.Unmarshal(data, &file)
	default:
		return nil, fmt.Errorf("unsupported config format %q", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.merge(&file)
	return cfg, cfg.validate()
}

// merge takes every field that is set in o.
func (c *benchConfig) merge(o *benchConfig) {
	if len(o.Propagate.Widths) > 0 {
		c.Propagate.Widths = o.Propagate.Widths
	}
	if len(o.Propagate.Heights) > 0 {
		c.Propagate.Heights = o.Propagate.Heights
	}
	if o.Propagate.Iterations != 0 {
		c.Propagate.Iterations = o.Propagate.Iterations
	}
	if len(o.Fanout) > 0 {
		c.Fanout = o.Fanout
	}
	if o.Repeats != 0 {
		c.Repeats = o.Repeats
	}
}

func (c *benchConfig) validate() error {
	if c.Repeats < 1 {
		return fmt.Errorf("repeats must be positive, got %d", c.Repeats)
	}
	if c.Propagate.Iterations < 1 {
		return fmt.Errorf("propagate iterations must be positive, got %d", c.Propagate.Iterations)
	}
	for _, f := range c.Fanout {
		if f.Width < 1 || f.Layers < 2 || f.Sources < 1 {
			return fmt.Errorf("fanout %q: width, sources and layers (at least 2) must be positive", f.Name)
		}
		if f.Iterations < 1 {
			return fmt.Errorf("fanout %q: iterations must be positive", f.Name)
		}
	}
	return nil
}
