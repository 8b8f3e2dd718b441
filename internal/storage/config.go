package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// userConfigFile is the name of the user configuration file (sibling to .menu/).
	userConfigFile = ".menuconfig.yaml"

	// Default configuration values
	DefaultCurrency      = "$"
	DefaultLogLevel      = "warn"
	DefaultAddr          = ":8080"
	DefaultMaxImageBytes = 5 << 20
	DefaultDecodeTimeout = 10 * time.Second
)

// Config represents user configuration from .menuconfig.yaml.
// This file is user-managed and never written by menu.
type Config struct {
	// Currency is the symbol printed in front of prices.
	Currency string `yaml:"currency"`

	// LogLevel is the zap level name (debug, info, warn, error).
	LogLevel string `yaml:"log_level"`

	// LogFile, when set, receives JSON logs with rotation.
	LogFile string `yaml:"log_file"`

	// Addr is the listen address for `menu serve`.
	Addr string `yaml:"addr"`

	// MaxImageBytes caps the size of an uploaded image.
	MaxImageBytes int64 `yaml:"max_image_bytes"`

	// DecodeTimeout bounds how long reading an uploaded image may take.
	DecodeTimeout time.Duration `yaml:"decode_timeout"`

	// ImageDir is searched for <slug>.webp/.jpg/.png when `menu add` has no --image.
	ImageDir string `yaml:"image_dir"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Currency:      DefaultCurrency,
		LogLevel:      DefaultLogLevel,
		Addr:          DefaultAddr,
		MaxImageBytes: DefaultMaxImageBytes,
		DecodeTimeout: DefaultDecodeTimeout,
	}
}

// LoadConfig loads .menuconfig.yaml if it exists, otherwise returns defaults.
// The config file is a sibling to .menu/ (in the same directory).
// Partial config files are merged with defaults.
func (s *Storage) LoadConfig() (*Config, error) {
	configPath := s.ConfigPath()

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			// No config file - return defaults
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", userConfigFile, err)
	}

	// Start with defaults
	cfg := DefaultConfig()

	// Parse YAML and merge with defaults
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", userConfigFile, err)
	}

	if cfg.MaxImageBytes <= 0 {
		return nil, fmt.Errorf("invalid max_image_bytes %d in %s", cfg.MaxImageBytes, userConfigFile)
	}
	if cfg.DecodeTimeout <= 0 {
		return nil, fmt.Errorf("invalid decode_timeout %s in %s", cfg.DecodeTimeout, userConfigFile)
	}
	if cfg.ImageDir != "" && !filepath.IsAbs(cfg.ImageDir) {
		cfg.ImageDir = filepath.Join(s.root, cfg.ImageDir)
	}

	return cfg, nil
}

// ConfigPath returns the path to the user config file.
func (s *Storage) ConfigPath() string {
	return filepath.Join(s.root, userConfigFile)
}
