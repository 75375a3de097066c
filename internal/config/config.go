// Package config provides configuration management for pms.
//
// The config file only says where the registry lives and how to log; the
// registry itself is in the database.
//
// Config file locations (priority order):
//  1. $PMS_CONFIG
//  2. ./pms.yaml
//  3. $XDG_CONFIG_HOME/pms/config.yaml
//  4. ~/.config/pms/config.yaml
//  5. /etc/pms/config.yaml
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultDatabasePath = "./pms.db"
	DefaultBusyTimeout  = 5 * time.Second
	DefaultLogLevel     = "info"
)

// Load finds and loads the config file, or returns defaults if none found.
// Environment overrides are applied in both cases.
func Load() (*Config, string, error) {
	path := FindConfigPath()

	if path == "" {
		cfg := DefaultConfig()
		if err := cfg.ApplyEnv(); err != nil {
			return nil, "", err
		}
		return cfg, "", nil
	}

	return LoadFromPath(path)
}

// LoadFromPath loads config from a specific path
func LoadFromPath(path string) (*Config, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, path, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.ApplyEnv(); err != nil {
		return nil, path, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, path, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return &cfg, path, nil
}

// Save writes config to the specified path
func (c *Config) Save(path string) error {
	if err := EnsureConfigDir(path); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}

// DefaultConfig returns sensible defaults for a new installation
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Database: DatabaseConfig{
			Path:        DefaultDatabasePath,
			BusyTimeout: Duration(DefaultBusyTimeout),
		},
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: FormatConsole,
		},
	}
}

// applyDefaults fills in missing values with defaults
func (c *Config) applyDefaults() {
	if c.Version == 0 {
		c.Version = 1
	}
	if c.Database.Path == "" {
		c.Database.Path = DefaultDatabasePath
	}
	if c.Database.BusyTimeout == 0 {
		c.Database.BusyTimeout = Duration(DefaultBusyTimeout)
	}
	if c.Logging.Level == "" {
		c.Logging.Level = DefaultLogLevel
	}
	if c.Logging.Format == "" {
		c.Logging.Format = FormatConsole
	}
}

// Validate checks values that defaults cannot repair
func (c *Config) Validate() error {
	if c.Database.BusyTimeout < 0 {
		return fmt.Errorf("database.busy_timeout must not be negative")
	}
	if _, err := ParseFormat(string(c.Logging.Format)); err != nil {
		return fmt.Errorf("logging.format: %w", err)
	}
	return nil
}

// Summary returns a human-readable config summary
func (c *Config) Summary() string {
	return fmt.Sprintf("Database: %s (busy timeout %s)\nLogging: %s, %s",
		c.Database.Path, c.Database.BusyTimeout.Duration(), c.Logging.Level, c.Logging.Format)
}
