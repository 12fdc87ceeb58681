// Package config loads slidecat settings from a YAML file and the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/tiendc/go-deepcopy"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the configuration file read when --config is not given.
const DefaultPath = "slidecat.yaml"

// Config holds all slidecat settings.
type Config struct {
	Split   SplitConfig   `yaml:"split"`
	Merge   MergeConfig   `yaml:"merge"`
	Logging LoggingConfig `yaml:"logging"`
}

// SplitConfig configures the split command.
type SplitConfig struct {
	OutputDir string `yaml:"output_dir"`
	ChunkSize int    `yaml:"chunk_size"`
}

// MergeConfig configures the merge command.
type MergeConfig struct {
	// BlankLayout is the name of the layout merged slides are placed on.
	BlankLayout string `yaml:"blank_layout"`
}

// LoggingConfig configures diagnostic logging.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Split: SplitConfig{
			OutputDir: "./slides",
			ChunkSize: 1,
		},
		Logging: LoggingConfig{
			Level: "warn",
		},
	}
}

// Load reads configuration from a YAML file. A missing file yields the
// defaults. Environment variables override both.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to a YAML file.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() error {
	if dir := os.Getenv("SLIDECAT_OUTPUT_DIR"); dir != "" {
		c.Split.OutputDir = dir
	}
	if size := os.Getenv("SLIDECAT_CHUNK_SIZE"); size != "" {
		n, err := strconv.Atoi(size)
		if err != nil {
			return fmt.Errorf("invalid SLIDECAT_CHUNK_SIZE %q: %w", size, err)
		}
		c.Split.ChunkSize = n
	}
	if level := os.Getenv("SLIDECAT_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
	return nil
}

// Clone returns a deep copy of c.
func (c *Config) Clone() (*Config, error) {
	var out Config
	if err := deepcopy.Copy(&out, c); err != nil {
		return nil, fmt.Errorf("failed to copy config: %w", err)
	}
	return &out, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Split.ChunkSize < 1 {
		return fmt.Errorf("invalid split.chunk_size: %d (must be at least 1)", c.Split.ChunkSize)
	}
	if c.Split.OutputDir == "" {
		return fmt.Errorf("split.output_dir must not be empty")
	}
	if _, err := zapcore.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("invalid logging.level: %w", err)
	}
	return nil
}
