// Package config resolves where quotes are stored and how the CLI logs.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// GlobalConfig represents configuration stored in ~/.config/quote-it/config.yml.
type GlobalConfig struct {
	StoreDir string `yaml:"store_dir,omitempty"`
	LogLevel string `yaml:"log_level,omitempty" validate:"omitempty,oneof=debug info warn error"`
}

const (
	// GlobalConfigDir is the directory name under XDG_CONFIG_HOME.
	GlobalConfigDir = "quote-it"
	// GlobalConfigFile is the config file name.
	GlobalConfigFile = "config.yml"
	// StoreDirEnv overrides store_dir from the config file.
	StoreDirEnv = "QUOTE_IT_DIR"
)

// ErrNoHome is returned when no config directory can be determined.
var ErrNoHome = errors.New("cannot determine user config directory")

var validate = validator.New(validator.WithRequiredStructEnabled())

// globalConfigCache caches the loaded global config.
var globalConfigCache *GlobalConfig

// ConfigHome returns XDG_CONFIG_HOME, defaulting to ~/.config.
func ConfigHome() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return configHome
}

// GlobalConfigPath returns the path to the global config file.
func GlobalConfigPath() string {
	configHome := ConfigHome()
	if configHome == "" {
		return ""
	}
	return filepath.Join(configHome, GlobalConfigDir, GlobalConfigFile)
}

// DefaultStoreDir returns the user-local directory holding quotes.jsonl.
func DefaultStoreDir() string {
	configHome := ConfigHome()
	if configHome == "" {
		return ""
	}
	return filepath.Join(configHome, GlobalConfigDir)
}

// LoadEnv loads a .env file from the working directory, if present.
func LoadEnv() {
	_ = godotenv.Load()
}

// LoadGlobalConfig loads the global configuration file.
// Returns an empty config (not an error) if the file doesn't exist.
func LoadGlobalConfig() (*GlobalConfig, error) {
	if globalConfigCache != nil {
		return globalConfigCache, nil
	}

	path := GlobalConfigPath()
	if path == "" {
		return &GlobalConfig{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &GlobalConfig{}, nil
		}
		return nil, fmt.Errorf("reading global config: %w", err)
	}

	var cfg GlobalConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing global config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.StoreDir != "" {
		cfg.StoreDir = ExpandTilde(cfg.StoreDir)
	}

	globalConfigCache = &cfg
	return &cfg, nil
}

// Validate checks field values of a loaded config.
func (c *GlobalConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, e := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s must be one of: %s", strings.ToLower(e.Field()), e.Param()))
			}
			return fmt.Errorf("invalid global config: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid global config: %w", err)
	}
	return nil
}

// ResetGlobalConfigCache clears the cached global config.
// Useful for testing.
func ResetGlobalConfigCache() {
	globalConfigCache = nil
}

// ResolveStoreDir picks the store directory. Precedence: the explicit
// override, then QUOTE_IT_DIR, then store_dir from the config file, then
// the default under XDG_CONFIG_HOME.
func ResolveStoreDir(override string) (string, error) {
	if override != "" {
		return ExpandTilde(override), nil
	}
	if env := os.Getenv(StoreDirEnv); env != "" {
		return ExpandTilde(env), nil
	}

	cfg, err := LoadGlobalConfig()
	if err != nil {
		return "", err
	}
	if cfg.StoreDir != "" {
		return cfg.StoreDir, nil
	}

	dir := DefaultStoreDir()
	if dir == "" {
		return "", ErrNoHome
	}
	return dir, nil
}

// ExpandTilde replaces a leading ~ with the user's home directory.
func ExpandTilde(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if path == "~" {
		return home
	}
	return filepath.Join(home, path[2:])
}
