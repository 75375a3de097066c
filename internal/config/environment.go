package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Environment variables that override file settings
const (
	EnvDatabasePath = "PMS_DB_PATH"
	EnvBusyTimeout  = "PMS_DB_BUSY_TIMEOUT"
	EnvLogLevel     = "PMS_LOG_LEVEL"
	EnvLogFormat    = "PMS_LOG_FORMAT"
)

// ApplyEnv overlays non-empty environment variables onto the config
func (c *Config) ApplyEnv() error {
	if v := lookupEnv(EnvDatabasePath); v != "" {
		c.Database.Path = v
	}
	if v := lookupEnv(EnvBusyTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvBusyTimeout, err)
		}
		c.Database.BusyTimeout = Duration(d)
	}
	if v := lookupEnv(EnvLogLevel); v != "" {
		c.Logging.Level = strings.ToLower(v)
	}
	if v := lookupEnv(EnvLogFormat); v != "" {
		f, err := ParseFormat(strings.ToLower(v))
		if err != nil {
			return fmt.Errorf("%s: %w", EnvLogFormat, err)
		}
		c.Logging.Format = f
	}
	return nil
}

func lookupEnv(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}
