// Package config loads the optional cp-r CLI config file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultPath is where Load looks when no --config flag is given.
const DefaultPath = ".cp-r.yml"

// Config holds CLI settings. Flags override anything set here.
type Config struct {
	// Exclude lists gitignore-syntax patterns for entries to skip.
	Exclude []string `yaml:"exclude"`
	// Hooks lists commands to run in the destination after a copy.
	Hooks []string `yaml:"hooks"`
	// Verify enables the post-copy hash verification pass.
	Verify bool `yaml:"verify"`
	// Workers bounds verification concurrency. 0 means NumCPU.
	Workers int `yaml:"workers"`
	// BufferSize is the copy buffer size in bytes. 0 means the library
	// default.
	BufferSize int `yaml:"buffer_size"`
}

func DefaultConfig() *Config {
	return &Config{}
}

// Load reads a YAML config file. A missing file is not an error: the
// defaults are returned so the CLI works without any config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}
	return &cfg, nil
}
