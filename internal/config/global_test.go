package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeGlobalConfig(t *testing.T, configHome, content string) {
	t.Helper()
	dir := filepath.Join(configHome, GlobalConfigDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, GlobalConfigFile), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestGlobalConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	path := GlobalConfigPath()
	want := "/custom/config/quote-it/config.yml"
	if path != want {
		t.Errorf("GlobalConfigPath() = %q, want %q", path, want)
	}

	t.Setenv("XDG_CONFIG_HOME", "")
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("Cannot get home directory")
	}
	path = GlobalConfigPath()
	want = filepath.Join(home, ".config", "quote-it", "config.yml")
	if path != want {
		t.Errorf("GlobalConfigPath() = %q, want %q", path, want)
	}
}

func TestLoadGlobalConfig_NotFound(t *testing.T) {
	ResetGlobalConfigCache()
	defer ResetGlobalConfigCache()

	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := LoadGlobalConfig()
	if err != nil {
		t.Fatalf("LoadGlobalConfig() error = %v", err)
	}
	if cfg == nil {
		t.Fatal("LoadGlobalConfig() returned nil")
	}
	if cfg.StoreDir != "" {
		t.Errorf("StoreDir = %q, want empty", cfg.StoreDir)
	}
}

func TestLoadGlobalConfig_Valid(t *testing.T) {
	ResetGlobalConfigCache()
	defer ResetGlobalConfigCache()

	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)
	writeGlobalConfig(t, tmpDir, "store_dir: /srv/quotes\nlog_level: debug\n")

	cfg, err := LoadGlobalConfig()
	if err != nil {
		t.Fatalf("LoadGlobalConfig() error = %v", err)
	}
	if cfg.StoreDir != "/srv/quotes" {
		t.Errorf("StoreDir = %q, want /srv/quotes", cfg.StoreDir)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
}

func TestLoadGlobalConfig_InvalidYAML(t *testing.T) {
	ResetGlobalConfigCache()
	defer ResetGlobalConfigCache()

	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)
	writeGlobalConfig(t, tmpDir, "store_dir: [unterminated\n")

	if _, err := LoadGlobalConfig(); err == nil {
		t.Error("LoadGlobalConfig() expected error for invalid YAML")
	}
}

func TestLoadGlobalConfig_InvalidLogLevel(t *testing.T) {
	ResetGlobalConfigCache()
	defer ResetGlobalConfigCache()

	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)
	writeGlobalConfig(t, tmpDir, "log_level: chatty\n")

	_, err := LoadGlobalConfig()
	if err == nil {
		t.Fatal("LoadGlobalConfig() expected error for invalid log_level")
	}
	if !strings.Contains(err.Error(), "loglevel") {
		t.Errorf("LoadGlobalConfig() error = %v, want mention of loglevel", err)
	}
}

func TestResolveStoreDir(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name     string
		override string
		env      string
		config   string
		want     string
	}{
		{"default", "", "", "", ""},
		{"config file", "", "", "store_dir: /from/config\n", "/from/config"},
		{"env beats config", "", "/from/env", "store_dir: /from/config\n", "/from/env"},
		{"override beats all", "/from/flag", "/from/env", "store_dir: /from/config\n", "/from/flag"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ResetGlobalConfigCache()
			defer ResetGlobalConfigCache()

			configHome := filepath.Join(tmpDir, strings.ReplaceAll(tt.name, " ", "_"))
			if err := os.MkdirAll(configHome, 0755); err != nil {
				t.Fatal(err)
			}
			t.Setenv("XDG_CONFIG_HOME", configHome)
			t.Setenv(StoreDirEnv, tt.env)
			if tt.config != "" {
				writeGlobalConfig(t, configHome, tt.config)
			}

			want := tt.want
			if want == "" {
				want = filepath.Join(configHome, GlobalConfigDir)
			}

			got, err := ResolveStoreDir(tt.override)
			if err != nil {
				t.Fatalf("ResolveStoreDir() error = %v", err)
			}
			if got != want {
				t.Errorf("ResolveStoreDir(%q) = %q, want %q", tt.override, got, want)
			}
		})
	}
}

func TestResolveStoreDir_ConfigError(t *testing.T) {
	ResetGlobalConfigCache()
	defer ResetGlobalConfigCache()

	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)
	t.Setenv(StoreDirEnv, "")
	writeGlobalConfig(t, tmpDir, "log_level: nope\n")

	if _, err := ResolveStoreDir(""); err == nil {
		t.Error("ResolveStoreDir() expected error for invalid config")
	}
}

func TestExpandTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("Cannot get home directory")
	}

	tests := []struct {
		in   string
		want string
	}{
		{"~", home},
		{"~/quotes", filepath.Join(home, "quotes")},
		{"/abs/path", "/abs/path"},
		{"rel/~/path", "rel/~/path"},
		{"~other/path", "~other/path"},
	}

	for _, tt := range tests {
		if got := ExpandTilde(tt.in); got != tt.want {
			t.Errorf("ExpandTilde(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
