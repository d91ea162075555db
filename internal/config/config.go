// Package config loads the optional configuration file of the command line
// tool. Flags given on the command line take precedence over the file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// EnvPath names the environment variable holding the default config path.
const EnvPath = "CSV_SUMMARY_CONFIG"

// Config holds all settings of the command line tool.
type Config struct {
	// Format is the output format (default: default)
	Format string `yaml:"format"`

	// Delimiter is the single byte field separator (default: ",")
	Delimiter string `yaml:"delimiter"`

	// Compression forces a decompressor instead of detecting it from the
	// file extension.
	Compression string `yaml:"compression"`

	// TrimHeader strips whitespace around header names.
	TrimHeader bool `yaml:"trim_header"`

	Log LogConfig `yaml:"log"`
	SQL SQLConfig `yaml:"sql"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error (default: info)
	Level string `yaml:"level"`

	// Format is text or json (default: text)
	Format string `yaml:"format"`
}

// SQLConfig holds settings of the sql output format.
type SQLConfig struct {
	// Schema is the target Postgres schema (default: public)
	Schema string `yaml:"schema"`
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads the YAML file at path. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config load: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config load: %s: %w", path, err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Format == "" {
		c.Format = "default"
	}
	if c.Delimiter == "" {
		c.Delimiter = ","
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	if c.SQL.Schema == "" {
		c.SQL.Schema = "public"
	}
}

// Validate checks the settings that can be checked without the inputs.
func (c *Config) Validate() error {
	var errs []error

	if len(c.Delimiter) != 1 {
		errs = append(errs, fmt.Errorf("delimiter must be a single byte, got %q", c.Delimiter))
	}

	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log format must be text or json, got %q", c.Log.Format))
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, fmt.Errorf("unknown log level %q", c.Log.Level))
	}

	return errors.Join(errs...)
}
