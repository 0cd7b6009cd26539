// Package config handles reading and writing .runlet/config.yaml.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the top-level structure for .runlet/config.yaml.
type Config struct {
	Version  int            `yaml:"version"`
	Log      LogConfig      `yaml:"log"`
	Workload WorkloadConfig `yaml:"workload"`
	Cleanup  CleanupConfig  `yaml:"cleanup"`
}

// LogConfig controls where session logs are written.
type LogConfig struct {
	Dir       string `yaml:"dir"`        // relative to the project root
	EchoDebug bool   `yaml:"echo_debug"` // echo DEBUG lines to the console
}

// WorkloadConfig controls the placeholder workload loop.
type WorkloadConfig struct {
	Steps       int `yaml:"steps"`
	StepDelayMs int `yaml:"step_delay_ms"`
}

// CleanupConfig controls pruning of old session logs.
type CleanupConfig struct {
	MaxAgeDays int `yaml:"max_age_days"`
}

// configDir is the per-project directory; configFile is the file inside it.
const configDir = ".runlet"
const configFile = "config.yaml"

// Dir returns the .runlet directory path under the project root.
func Dir(root string) string {
	return filepath.Join(root, configDir)
}

// ReadConfig reads .runlet/config.yaml from the given project directory.
// dir is the project root (not .runlet/ itself).
// Returns an error if the file is not found or YAML is malformed.
func ReadConfig(dir string) (*Config, error) {
	path := filepath.Join(dir, configDir, configFile)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return &cfg, nil
}

// WriteConfig writes cfg to .runlet/config.yaml in the given project directory.
// Creates the .runlet/ directory if it does not exist.
func WriteConfig(dir string, cfg *Config) error {
	dirPath := filepath.Join(dir, configDir)
	if err := os.MkdirAll(dirPath, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}

	path := filepath.Join(dirPath, configFile)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// DefaultConfig returns a Config populated with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Log: LogConfig{
			Dir:       filepath.Join(configDir, "logs"),
			EchoDebug: false,
		},
		Workload: WorkloadConfig{
			Steps:       10,
			StepDelayMs: 500,
		},
		Cleanup: CleanupConfig{
			MaxAgeDays: 30,
		},
	}
}
