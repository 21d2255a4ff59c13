// Package config provides configuration management for otp76.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/u8slvn/otp-76/internal/fileutil"
	"github.com/u8slvn/otp-76/internal/parse"
)

// ErrEmptyValue is returned by Validate for a required value left blank.
var ErrEmptyValue = errors.New("value must not be empty")

// Config represents the application configuration.
type Config struct {
	Version    int              `yaml:"version"`
	Home       string           `yaml:"home"`
	Generation GenerationConfig `yaml:"generation"`
	Storage    StorageConfig    `yaml:"storage"`
	Output     OutputConfig     `yaml:"output"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// GenerationConfig holds the default pad and key counts for create-pads.
type GenerationConfig struct {
	Pads int `yaml:"pads"`
	Keys int `yaml:"keys"`
}

// StorageConfig defines where and how pad collections are stored.
type StorageConfig struct {
	File    string `yaml:"file"`
	Encrypt bool   `yaml:"encrypt"`
}

// OutputConfig defines output formatting settings.
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format"`
	Color         string `yaml:"color"`
	Verbose       bool   `yaml:"verbose"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Load reads configuration from the specified file on top of Defaults.
func Load(path string) (*Config, error) {
	// #nosec G304 -- config file path is from validated user input
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes configuration to the specified file.
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return fileutil.WriteAtomic(path, data, 0o600)
}

// Validate checks that the generation defaults are usable counts.
func (c *Config) Validate() error {
	if _, err := parse.ParseCount(strconv.Itoa(c.Generation.Pads)); err != nil {
		return fmt.Errorf("generation.pads: %w", err)
	}
	if _, err := parse.ParseCount(strconv.Itoa(c.Generation.Keys)); err != nil {
		return fmt.Errorf("generation.keys: %w", err)
	}
	if strings.TrimSpace(c.Storage.File) == "" {
		return fmt.Errorf("storage.file: %w", ErrEmptyValue)
	}
	return nil
}

// Path returns the config file path inside home.
func Path(home string) string {
	return filepath.Join(home, "config.yaml")
}

// PadsFile returns the configured pad file path with "~" expanded. A
// relative path is resolved against the home directory.
func (c *Config) PadsFile() string {
	p := ExpandPath(c.Storage.File)
	if !filepath.IsAbs(p) {
		p = filepath.Join(ExpandPath(c.Home), p)
	}
	return p
}

// GetLoggingLevel returns the configured logging level.
func (c *Config) GetLoggingLevel() string {
	return c.Logging.Level
}

// GetOutputFormat returns the default output format.
func (c *Config) GetOutputFormat() string {
	return c.Output.DefaultFormat
}

// IsVerbose returns true if verbose output is enabled.
func (c *Config) IsVerbose() bool {
	return c.Output.Verbose
}

// DefaultHome returns the default otp76 home directory.
func DefaultHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".otp76"
	}
	return filepath.Join(home, ".otp76")
}

// ExpandPath replaces a leading "~/" with the user's home directory.
func ExpandPath(p string) string {
	if !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, p[2:])
}
