package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ParseFile loads a RunConfig document from disk, validates it, and returns
// the resolved result.
func ParseFile(path string) (*RunConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read run config %q: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes and validates a RunConfig document from raw YAML bytes.
func Parse(data []byte) (*RunConfig, error) {
	var cfg RunConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse run config: %w", err)
	}
	if err := ValidateConfig(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
