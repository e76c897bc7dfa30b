package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadYAML reads a YAML parameter file. Keys that are absent keep their defaults.
func LoadYAML(path string) (*Settings, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read parameter file: %w", err)
	}
	return ParseYAML(b)
}

// ParseYAML reads YAML parameters from data.
func ParseYAML(data []byte) (*Settings, error) {
	s := Default()
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("failed to parse parameters: %w", err)
	}
	s.Normalize()
	return s, nil
}
