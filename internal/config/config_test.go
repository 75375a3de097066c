package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// isolate clears every variable that can leak host configuration into a test
func isolate(t *testing.T) {
	t.Helper()
	for _, key := range []string{EnvConfigPath, EnvDatabasePath, EnvBusyTimeout, EnvLogLevel, EnvLogFormat} {
		t.Setenv(key, "")
	}
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Version != 1 {
		t.Errorf("Version = %d, want 1", cfg.Version)
	}
	if cfg.Database.Path != DefaultDatabasePath {
		t.Errorf("Database.Path = %s, want %s", cfg.Database.Path, DefaultDatabasePath)
	}
	if cfg.Database.BusyTimeout.Duration() != 5*time.Second {
		t.Errorf("Database.BusyTimeout = %s, want 5s", cfg.Database.BusyTimeout.Duration())
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != FormatConsole {
		t.Errorf("Logging = %+v, want info/console", cfg.Logging)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error: %v", err)
	}
}

func TestLoadWithoutFileReturnsDefaults(t *testing.T) {
	isolate(t)

	cfg, path, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if path != "" {
		t.Errorf("path = %q, want empty", path)
	}
	if cfg.Database.Path != DefaultDatabasePath {
		t.Errorf("Database.Path = %s, want default", cfg.Database.Path)
	}
}

func TestLoadFromPathAppliesDefaults(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "database:\n  path: /var/lib/pms/registry.db\n")

	cfg, got, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath() error: %v", err)
	}
	if got != path {
		t.Errorf("path = %s, want %s", got, path)
	}
	if cfg.Database.Path != "/var/lib/pms/registry.db" {
		t.Errorf("Database.Path = %s", cfg.Database.Path)
	}
	if cfg.Database.BusyTimeout.Duration() != DefaultBusyTimeout {
		t.Errorf("BusyTimeout = %s, want default", cfg.Database.BusyTimeout.Duration())
	}
	if cfg.Logging.Format != FormatConsole {
		t.Errorf("Logging.Format = %s, want console", cfg.Logging.Format)
	}
}

func TestLoadFromPathErrors(t *testing.T) {
	isolate(t)
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"malformed yaml", "database: [", "parse config"},
		{"bad duration", "database:\n  busy_timeout: soon\n", "parse config"},
		{"unknown format", "logging:\n  format: xml\n", "logging.format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, strings.ReplaceAll(tt.name, " ", "_")+".yaml")
			writeFile(t, path, tt.content)

			_, _, err := LoadFromPath(path)
			if err == nil {
				t.Fatal("LoadFromPath() should fail")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, want mention of %q", err, tt.want)
			}
		})
	}

	if _, _, err := LoadFromPath(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("LoadFromPath() should fail for a missing file")
	}
}

func TestEnvironmentOverrides(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "database:\n  path: file.db\nlogging:\n  level: info\n")

	t.Setenv(EnvDatabasePath, "env.db")
	t.Setenv(EnvBusyTimeout, "250ms")
	t.Setenv(EnvLogLevel, "DEBUG")
	t.Setenv(EnvLogFormat, "json")

	cfg, _, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath() error: %v", err)
	}
	if cfg.Database.Path != "env.db" {
		t.Errorf("Database.Path = %s, want env.db", cfg.Database.Path)
	}
	if cfg.Database.BusyTimeout.Duration() != 250*time.Millisecond {
		t.Errorf("BusyTimeout = %s, want 250ms", cfg.Database.BusyTimeout.Duration())
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %s, want debug", cfg.Logging.Level)
	}
	if cfg.Logging.Format != FormatJSON {
		t.Errorf("Logging.Format = %s, want json", cfg.Logging.Format)
	}
}

func TestEnvironmentOverrideErrors(t *testing.T) {
	isolate(t)

	t.Setenv(EnvBusyTimeout, "forever")
	if err := DefaultConfig().ApplyEnv(); err == nil {
		t.Error("ApplyEnv() should reject a malformed busy timeout")
	}

	t.Setenv(EnvBusyTimeout, "")
	t.Setenv(EnvLogFormat, "xml")
	if _, _, err := Load(); err == nil {
		t.Error("Load() should reject an unknown log format")
	}
}

func TestSaveAndLoad(t *testing.T) {
	isolate(t)
	configPath := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.Database.Path = "/srv/pms.db"
	cfg.Database.BusyTimeout = Duration(2 * time.Second)
	cfg.Logging.Format = FormatJSON

	if err := cfg.Save(configPath); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	loaded, _, err := LoadFromPath(configPath)
	if err != nil {
		t.Fatalf("LoadFromPath() error: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("loaded = %+v, want %+v", *loaded, *cfg)
	}
}

func TestFindConfigPath(t *testing.T) {
	isolate(t)

	if found := FindConfigPath(); found != "" {
		t.Fatalf("FindConfigPath() = %s, want none", found)
	}

	// XDG location
	xdg := os.Getenv("XDG_CONFIG_HOME")
	xdgPath := filepath.Join(xdg, ConfigDirName, "config.yaml")
	writeFile(t, xdgPath, "version: 1\n")
	if found := FindConfigPath(); found != xdgPath {
		t.Errorf("FindConfigPath() = %s, want %s", found, xdgPath)
	}

	// Working directory beats XDG
	writeFile(t, ConfigFileName, "version: 1\n")
	if found := FindConfigPath(); filepath.Base(found) != ConfigFileName {
		t.Errorf("FindConfigPath() = %s, want ./%s", found, ConfigFileName)
	}

	// Explicit env var beats everything when it exists
	explicit := filepath.Join(t.TempDir(), "explicit.yaml")
	writeFile(t, explicit, "version: 1\n")
	t.Setenv(EnvConfigPath, explicit)
	if found := FindConfigPath(); found != explicit {
		t.Errorf("FindConfigPath() = %s, want %s", found, explicit)
	}

	// Explicit path doesn't exist, should fall back
	t.Setenv(EnvConfigPath, "/nonexistent/path.yaml")
	if found := FindConfigPath(); filepath.Base(found) != ConfigFileName {
		t.Errorf("FindConfigPath() = %s, want fallback to working directory", found)
	}
}

func TestDuration(t *testing.T) {
	d := Duration(5 * time.Minute)

	if d.Duration() != 5*time.Minute {
		t.Errorf("Duration() = %s, want 5m", d.Duration())
	}

	marshaled, err := d.MarshalYAML()
	if err != nil {
		t.Fatalf("MarshalYAML() error: %v", err)
	}
	if marshaled != "5m0s" {
		t.Errorf("MarshalYAML() = %v, want 5m0s", marshaled)
	}
}

func TestParseFormat(t *testing.T) {
	for _, ok := range []string{"console", "json"} {
		if _, err := ParseFormat(ok); err != nil {
			t.Errorf("ParseFormat(%q) error: %v", ok, err)
		}
	}
	if _, err := ParseFormat("text"); err == nil {
		t.Error("ParseFormat(\"text\") should fail")
	}
}

func TestDefaultConfigPath(t *testing.T) {
	isolate(t)
	xdg := os.Getenv("XDG_CONFIG_HOME")
	if got, want := DefaultConfigPath(), filepath.Join(xdg, "pms", "config.yaml"); got != want {
		t.Errorf("DefaultConfigPath() = %s, want %s", got, want)
	}

	t.Setenv("XDG_CONFIG_HOME", "")
	home := os.Getenv("HOME")
	if got, want := DefaultConfigPath(), filepath.Join(home, ".config", "pms", "config.yaml"); got != want {
		t.Errorf("DefaultConfigPath() = %s, want %s", got, want)
	}
}
