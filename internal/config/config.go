// Package config loads chic settings from a TOML or YAML file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/you-not-fish/chi/internal/syntax"
)

// Config holds the complete chic configuration
type Config struct {
	Parse  ParseConfig  `toml:"parse" yaml:"parse"`
	Output OutputConfig `toml:"output" yaml:"output"`
	Log    LogConfig    `toml:"log" yaml:"log"`
	Run    RunConfig    `toml:"run" yaml:"run"`
}

// ParseConfig holds parser limits
type ParseConfig struct {
	MaxDepth int `toml:"max_depth" yaml:"max_depth"`
}

// OutputConfig selects how programs are printed
type OutputConfig struct {
	Format string `toml:"format" yaml:"format"` // text, json or yaml
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string `toml:"level" yaml:"level"`   // debug, info, warn or error
	Format string `toml:"format" yaml:"format"` // text or json
}

// RunConfig controls multi-file runs
type RunConfig struct {
	Jobs int `toml:"jobs" yaml:"jobs"` // files parsed in parallel
}

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load loads configuration from a file. The format follows the extension:
// .toml, or .yaml/.yml.
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read config")
	}

	var cfg Config
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return nil, errors.Wrapf(err, "parse config %s", path)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, errors.Wrapf(err, "parse config %s", path)
		}
	default:
		return nil, errors.Errorf("config %s: unsupported extension %q (want .toml, .yaml or .yml)", path, ext)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "config %s", path)
	}
	return &cfg, nil
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	if c.Parse.MaxDepth == 0 {
		c.Parse.MaxDepth = syntax.DefaultMaxDepth
	}
	if c.Output.Format == "" {
		c.Output.Format = FormatText
	}
	if c.Log.Level == "" {
		c.Log.Level = "warn"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	if c.Run.Jobs == 0 {
		c.Run.Jobs = runtime.GOMAXPROCS(0)
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.Parse.MaxDepth < 1 {
		return fmt.Errorf("parse.max_depth must be positive, got %d", c.Parse.MaxDepth)
	}
	switch c.Output.Format {
	case FormatText, FormatJSON, FormatYAML:
	default:
		return fmt.Errorf("output.format must be text, json or yaml, got %q", c.Output.Format)
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be debug, info, warn or error, got %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}
	if c.Run.Jobs < 1 {
		return fmt.Errorf("run.jobs must be positive, got %d", c.Run.Jobs)
	}
	return nil
}
