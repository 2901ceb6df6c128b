package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ProjectConfig holds project-level settings loaded from blueprint.yml.
// Flags override everything here; environment variables fill in secrets.
type ProjectConfig struct {
	// Provider forces a generation backend: "gemini" or "offline".
	Provider string `yaml:"provider,omitempty"`

	// Model overrides the live backend model.
	Model string `yaml:"model,omitempty"`

	// TimeoutSeconds bounds each parallel agent call.
	TimeoutSeconds int `yaml:"timeoutSeconds,omitempty"`

	// MaxParallel caps concurrent execution-phase agents.
	MaxParallel int `yaml:"maxParallel,omitempty"`

	// DataDir is where runs are persisted. Defaults to ".blueprint".
	DataDir string `yaml:"dataDir,omitempty"`

	// Verbose enables agent-level progress output.
	Verbose bool `yaml:"verbose,omitempty"`
}

// Load attempts to read blueprint.yml or blueprint.yaml from the given
// directory. Returns a zero-value config (not an error) if no config file
// exists; a malformed file is a fatal configuration problem.
func Load(dir string) (*ProjectConfig, error) {
	for _, name := range []string{"blueprint.yml", "blueprint.yaml"} {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var cfg ProjectConfig
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", name, err)
		}
		return &cfg, nil
	}
	return &ProjectConfig{}, nil
}
