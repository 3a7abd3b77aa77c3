package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultRegistry is the npm registry queried for the latest turbo release.
const DefaultRegistry = "https://registry.npmjs.org"

// Config is the contents of config.yaml. Zero fields fall back to defaults.
type Config struct {
	// Registry is the npm registry base URL.
	Registry string `yaml:"registry"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"logLevel"`

	// LogFormat is text or json.
	LogFormat string `yaml:"logFormat"`

	// RetryMax bounds registry request retries.
	RetryMax int `yaml:"retryMax"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Registry:  DefaultRegistry,
		LogLevel:  "warn",
		LogFormat: "text",
		RetryMax:  3,
	}
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("unmarshal config %s: %w", path, err)
	}
	cfg.merge(&file)

	if cfg.RetryMax < 0 {
		return nil, fmt.Errorf("config %s: retryMax must not be negative", path)
	}
	return cfg, nil
}

func (c *Config) merge(o *Config) {
	if o.Registry != "" {
		c.Registry = o.Registry
	}
	if o.LogLevel != "" {
		c.LogLevel = o.LogLevel
	}
	if o.LogFormat != "" {
		c.LogFormat = o.LogFormat
	}
	if o.RetryMax != 0 {
		c.RetryMax = o.RetryMax
	}
}
