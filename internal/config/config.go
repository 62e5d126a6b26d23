package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds the machine-level settings that do not belong to any one
// learner profile: where the database lives and the teacher's own defaults.
type Config struct {
	// DatabasePath overrides the default database location when set.
	DatabasePath string `yaml:"databasePath"`

	// School and ClassGroup prefill teacher commands and new profiles.
	School     string `yaml:"school"`
	ClassGroup string `yaml:"classGroup"`

	// AppVersion stamped into exports; normally left at the build default.
	AppVersion string `yaml:"appVersion"`
}

// DefaultPath resolves the config file location: MATEMAGICA_CONFIG, then
// XDG_CONFIG_HOME, then ~/.config.
func DefaultPath() (string, error) {
	if p := os.Getenv("MATEMAGICA_CONFIG"); p != "" {
		return p, nil
	}
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "matemagica", "config.yaml"), nil
}

// Load reads the config file at path. A missing file is not an error; it
// yields the zero config so first runs need no setup.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Config{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

// Save writes the config back, creating the parent directory when needed.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
