package config

import (
	"os"
	"path/filepath"
)

const (
	// EnvConfigPath is the environment variable for explicit config path
	EnvConfigPath = "PMS_CONFIG"
	// ConfigFileName is the config file name looked up in the working directory
	ConfigFileName = "pms.yaml"
	// ConfigDirName is the config directory name under XDG and /etc
	ConfigDirName = "pms"
)

// FindConfigPath returns the first existing candidate from SearchPaths, or
// an empty string if there is none
func FindConfigPath() string {
	for _, path := range SearchPaths() {
		if fileExists(path) {
			if abs, err := filepath.Abs(path); err == nil {
				return abs
			}
			return path
		}
	}
	return ""
}

// SearchPaths lists config file candidates in priority order:
//  1. $PMS_CONFIG
//  2. ./pms.yaml
//  3. $XDG_CONFIG_HOME/pms/config.yaml
//  4. ~/.config/pms/config.yaml
//  5. /etc/pms/config.yaml
func SearchPaths() []string {
	var paths []string
	if path := os.Getenv(EnvConfigPath); path != "" {
		paths = append(paths, path)
	}
	paths = append(paths, ConfigFileName)
	if xdgHome := os.Getenv("XDG_CONFIG_HOME"); xdgHome != "" {
		paths = append(paths, filepath.Join(xdgHome, ConfigDirName, "config.yaml"))
	}
	if home := os.Getenv("HOME"); home != "" {
		paths = append(paths, filepath.Join(home, ".config", ConfigDirName, "config.yaml"))
	}
	return append(paths, filepath.Join("/etc", ConfigDirName, "config.yaml"))
}

// DefaultConfigPath returns the preferred location for a new config file:
// the XDG config home when known, else the working directory
func DefaultConfigPath() string {
	if xdgHome := os.Getenv("XDG_CONFIG_HOME"); xdgHome != "" {
		return filepath.Join(xdgHome, ConfigDirName, "config.yaml")
	}
	if home := os.Getenv("HOME"); home != "" {
		return filepath.Join(home, ".config", ConfigDirName, "config.yaml")
	}
	return ConfigFileName
}

// EnsureConfigDir creates the config directory if it doesn't exist
func EnsureConfigDir(configPath string) error {
	return os.MkdirAll(filepath.Dir(configPath), 0755)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
