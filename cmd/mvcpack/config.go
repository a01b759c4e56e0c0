package main

import (
	"fmt"
	"os"

	"github.com/pthm/mvcpack/example/tasks"
	"gopkg.in/yaml.v3"
)

// DefaultKey signs snapshots when neither the config nor --key sets one.
const DefaultKey = "mvcpack-development-key"

// Config describes the application the CLI builds.
type Config struct {
	// Title of the task list. Empty keeps the model default.
	Title string `yaml:"title"`
	// Tasks seeds the list when no snapshot is given.
	Tasks []string `yaml:"tasks"`
	// Env maps environment names to mode names.
	Env map[string]string `yaml:"env"`
	// Modes holds the per-mode view configuration.
	Modes map[string]tasks.Config `yaml:"modes"`
	// Key is the snapshot key.
	Key string `yaml:"key"`
}

// DefaultConfig returns the configuration used without a config file.
func DefaultConfig() Config {
	return Config{
		Env: tasks.DefaultEnv(),
		Key: DefaultKey,
	}
}

// LoadConfig reads a YAML config file over the defaults. An empty path
// returns the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read the config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse the config file %s: %w", path, err)
	}
	if cfg.Key == "" {
		cfg.Key = DefaultKey
	}
	for name, mode := range cfg.Env {
		if mode == "" {
			return cfg, fmt.Errorf("env %q has no mode", name)
		}
	}
	return cfg, nil
}

// ModeConfigs returns the mode configs in the form mvcpack.BuildModule takes.
func (c Config) ModeConfigs() map[string]any {
	out := make(map[string]any, len(c.Modes))
	for name, mode := range c.Modes {
		out[name] = &mode
	}
	return out
}

// ModelArgs returns the constructor arguments of the task list.
func (c Config) ModelArgs() []any {
	return []any{c.Title, c.Tasks}
}
