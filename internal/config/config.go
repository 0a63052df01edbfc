// Package config loads the cfgs tool configuration from YAML files and
// environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the cfgs tool.
type Config struct {
	// OutputDir is where generated DOT/PNG files are written.
	OutputDir string `yaml:"output_dir" env:"CFGS_OUTPUT_DIR"`

	// HardwareFile points to a hardware-description JSON file. Empty means
	// built-in defaults.
	HardwareFile string `yaml:"hardware_file" env:"CFGS_HARDWARE_FILE"`

	// Render controls whether generation attempts PNG rendering via the
	// external graphviz binary.
	Render bool `yaml:"render" env:"CFGS_RENDER"`

	// RenderBinary overrides the graphviz binary name.
	RenderBinary string `yaml:"render_binary" env:"CFGS_RENDER_BINARY"`

	// Jobs is the batch worker count.
	Jobs int `yaml:"jobs" env:"CFGS_JOBS"`

	// CachePath is where batch results persist between runs. Empty disables
	// the cache.
	CachePath string `yaml:"cache_path" env:"CFGS_CACHE_PATH"`

	// Cores, Arch, Memory override the hardware defaults without a file.
	Cores  int    `yaml:"cores" env:"CFGS_CORES"`
	Arch   string `yaml:"arch" env:"CFGS_ARCH"`
	Memory string `yaml:"memory" env:"CFGS_MEMORY"`

	// Verbose enables debug logging.
	Verbose bool `yaml:"verbose" env:"CFGS_VERBOSE"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		OutputDir:    "output",
		RenderBinary: "dot",
		Jobs:         4,
		Cores:        8,
		Arch:         "x86_64",
		Memory:       "16GB",
	}
}

// globalConfigFilePath returns ~/.cfgs/config.yaml.
func globalConfigFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".cfgs/config.yaml"
	}
	return filepath.Join(home, ".cfgs", "config.yaml")
}

// projectConfigFilePath returns the project-level config path.
func projectConfigFilePath() string {
	return ".cfgs/config.yaml"
}

// Load reads configuration with the following priority (highest to lowest):
// 1. Environment variables
// 2. Project-level config (./.cfgs/config.yaml)
// 3. Global config (~/.cfgs/config.yaml)
// 4. Defaults
func Load() (*Config, error) {
	cfg := DefaultConfig()

	for _, path := range []string{globalConfigFilePath(), projectConfigFilePath()} {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromFile reads configuration from a specific YAML file.
func LoadFromFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to a YAML file, creating parent directories
// as needed.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file %s: %w", path, err)
	}
	return nil
}

// DefaultPath returns the global config file location used by Save.
func DefaultPath() string {
	return globalConfigFilePath()
}

// Validate checks the configuration for inconsistencies.
func (c *Config) Validate() error {
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir must not be empty")
	}
	if c.Jobs < 1 {
		return fmt.Errorf("jobs must be at least 1, got %d", c.Jobs)
	}
	if c.Cores < 1 {
		return fmt.Errorf("cores must be at least 1, got %d", c.Cores)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("CFGS_OUTPUT_DIR"); v != "" {
		cfg.OutputDir = v
	}
	if v := os.Getenv("CFGS_HARDWARE_FILE"); v != "" {
		cfg.HardwareFile = v
	}
	if v := os.Getenv("CFGS_RENDER"); v != "" {
		cfg.Render = v == "1" || v == "true"
	}
	if v := os.Getenv("CFGS_RENDER_BINARY"); v != "" {
		cfg.RenderBinary = v
	}
	if v := os.Getenv("CFGS_JOBS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Jobs = n
		}
	}
	if v := os.Getenv("CFGS_CACHE_PATH"); v != "" {
		cfg.CachePath = v
	}
	if v := os.Getenv("CFGS_CORES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Cores = n
		}
	}
	if v := os.Getenv("CFGS_ARCH"); v != "" {
		cfg.Arch = v
	}
	if v := os.Getenv("CFGS_MEMORY"); v != "" {
		cfg.Memory = v
	}
	if v := os.Getenv("CFGS_VERBOSE"); v != "" {
		cfg.Verbose = v == "1" || v == "true"
	}
}
