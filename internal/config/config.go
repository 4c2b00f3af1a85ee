package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ProjectConfig holds project-level settings loaded from primer.yml.
type ProjectConfig struct {
	OutputPath   string   `yaml:"outputPath,omitempty"`
	BudgetTokens int      `yaml:"budgetTokens,omitempty"`
	MaxDepth     int      `yaml:"maxDepth,omitempty"`
	ExcludeDirs  []string `yaml:"excludeDirs,omitempty"`
	GraphPath    string   `yaml:"graphPath,omitempty"`
	Verbose      bool     `yaml:"verbose,omitempty"`
}

// Load attempts to read primer.yml or primer.yaml from the given directory.
// Returns a zero-value config (not an error) if no config file exists.
func Load(dir string) (*ProjectConfig, error) {
	for _, name := range []string{"primer.yml", "primer.yaml"} {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var cfg ProjectConfig
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
		return &cfg, nil
	}
	return &ProjectConfig{}, nil
}
