// Package config loads project settings from novel.toml or novel.yaml.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/SatelliteDish/Novel/syntax"
)

// FileNames are the configuration files Find looks for, in order.
var FileNames = []string{"novel.toml", "novel.yaml", "novel.yml"}

// Config holds the complete project configuration
type Config struct {
	Parser ParserConfig `toml:"parser" yaml:"parser"`
	Eval   EvalConfig   `toml:"eval" yaml:"eval"`
	Output OutputConfig `toml:"output" yaml:"output"`
	Log    LogConfig    `toml:"log" yaml:"log"`
	Check  CheckConfig  `toml:"check" yaml:"check"`
}

// ParserConfig controls how sources are parsed
type ParserConfig struct {
	Recovery  string `toml:"recovery" yaml:"recovery"`
	StartLine int    `toml:"start_line" yaml:"start_line"`
}

// EvalConfig controls evaluation
type EvalConfig struct {
	Force bool `toml:"force" yaml:"force"`
}

// OutputConfig selects how results are printed
type OutputConfig struct {
	Format string `toml:"format" yaml:"format"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Verbosity int    `toml:"verbosity" yaml:"verbosity"`
	File      string `toml:"file" yaml:"file"`
}

// CheckConfig holds settings for checking many files at once
type CheckConfig struct {
	Workers       int      `toml:"workers" yaml:"workers"`
	WatchInterval Duration `toml:"watch_interval" yaml:"watch_interval"`
}

// Duration wraps time.Duration for TOML and YAML parsing
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText formats the duration as a string
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads the file at path. The format is chosen by extension.
func Load(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(content, formatOf(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes content in the given format ("toml" or "yaml"), fills in
// defaults and validates the result.
func Parse(content []byte, format string) (*Config, error) {
	var cfg Config
	switch format {
	case "toml":
		if _, err := toml.Decode(string(content), &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	case "yaml":
		if err := yaml.Unmarshal(content, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format: %q", format)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Find looks for a configuration file in dir and its parents and returns the
// first one found.
func Find(dir string) (string, bool) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", false
	}
	for {
		for _, name := range FileNames {
			path := filepath.Join(dir, name)
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				return path, true
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// LoadOrDefault loads path, or the file Find locates from dir when path is
// empty, or the defaults when there is none.
func LoadOrDefault(path, dir string) (*Config, error) {
	if path == "" {
		found, ok := Find(dir)
		if !ok {
			return Default(), nil
		}
		path = found
	}
	return Load(path)
}

func formatOf(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml"
	case ".toml":
		return "toml"
	}
	return strings.TrimPrefix(filepath.Ext(path), ".")
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	if c.Parser.Recovery == "" {
		c.Parser.Recovery = syntax.RecoverSkip.String()
	}
	if c.Parser.StartLine == 0 {
		c.Parser.StartLine = 1
	}
	if c.Output.Format == "" {
		c.Output.Format = "text"
	}
	if c.Check.WatchInterval.Duration == 0 {
		c.Check.WatchInterval.Duration = time.Second
	}
}

// Validate reports the first setting that has no meaning.
func (c *Config) Validate() error {
	if _, ok := syntax.ParseRecovery(c.Parser.Recovery); !ok {
		return fmt.Errorf("parser.recovery: unknown policy %q (expected skip or stop)", c.Parser.Recovery)
	}
	switch c.Output.Format {
	case "text", "json":
	default:
		return fmt.Errorf("output.format: unknown format %q (expected text or json)", c.Output.Format)
	}
	if c.Check.Workers < 0 {
		return fmt.Errorf("check.workers: must not be negative, got %d", c.Check.Workers)
	}
	if c.Log.Verbosity < 0 {
		return fmt.Errorf("log.verbosity: must not be negative, got %d", c.Log.Verbosity)
	}
	return nil
}

// ParserOptions turns the parser settings into options for syntax.Parse.
func (c *Config) ParserOptions() []syntax.Option {
	recovery, _ := syntax.ParseRecovery(c.Parser.Recovery)
	return []syntax.Option{
		syntax.WithStartLine(c.Parser.StartLine),
		syntax.WithRecovery(recovery),
	}
}
