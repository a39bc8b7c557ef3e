package model

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage backend names.
const (
	StorageSQLite = "sqlite"
	StorageMemory = "memory"
)

// StorageConfig selects where checklists are persisted.
type StorageConfig struct {
	// Backend is "sqlite" or "memory".
	Backend string `mapstructure:"backend" yaml:"backend"`

	// Path is the SQLite database file.
	Path string `mapstructure:"path" yaml:"path"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"`

	// File receives log output while the terminal UI owns the screen.
	File string `mapstructure:"file" yaml:"file"`
}

// SubscriptionConfig holds settings for the subscription provider.
type SubscriptionConfig struct {
	// APIKeyEnv names the environment variable holding the API key.
	// The keyring is consulted when the variable is empty.
	APIKeyEnv string `mapstructure:"api_key_env" yaml:"api_key_env"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	Storage      StorageConfig      `mapstructure:"storage" yaml:"storage"`
	Locale       string             `mapstructure:"locale" yaml:"locale"`
	Log          LogConfig          `mapstructure:"log" yaml:"log"`
	Subscription SubscriptionConfig `mapstructure:"subscription" yaml:"subscription"`
}

// DefaultConfigPath returns ~/.config/sailcheck/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "sailcheck", "config.yaml")
}

func defaultDataPath(parts ...string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", parts[len(parts)-1])
	}
	return filepath.Join(append([]string{home}, parts...)...)
}

// DefaultAppConfig returns the configuration used when no file exists.
func DefaultAppConfig() *AppConfig {
	return &AppConfig{
		Storage: StorageConfig{
			Backend: StorageSQLite,
			Path:    defaultDataPath(".local", "share", "sailcheck", "sailcheck.db"),
		},
		Locale: "en",
		Log: LogConfig{
			Level: "info",
			File:  defaultDataPath(".local", "state", "sailcheck", "sailcheck.log"),
		},
		Subscription: SubscriptionConfig{
			APIKeyEnv: "SAILCHECK_REVENUECAT_API_KEY",
		},
	}
}

func setDefaults(v *viper.Viper) {
	d := DefaultAppConfig()
	v.SetDefault("storage.backend", d.Storage.Backend)
	v.SetDefault("storage.path", d.Storage.Path)
	v.SetDefault("locale", d.Locale)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("subscription.api_key_env", d.Subscription.APIKeyEnv)
}

// LoadConfig reads configuration from the YAML file at path using Viper.
// A .env file in the working directory is loaded first, and SAILCHECK_*
// environment variables override file values. A missing file yields
// defaults.
func LoadConfig(path string) (*AppConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("SAILCHECK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	cfg := DefaultAppConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	switch cfg.Storage.Backend {
	case StorageSQLite, StorageMemory:
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}

	return cfg, nil
}

// SaveConfig writes cfg to a YAML file at path, creating parent
// directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("storage", map[string]any{
		"backend": cfg.Storage.Backend,
		"path":    cfg.Storage.Path,
	})
	v.Set("locale", cfg.Locale)
	v.Set("log", map[string]any{
		"level": cfg.Log.Level,
		"file":  cfg.Log.File,
	})
	v.Set("subscription", map[string]any{
		"api_key_env": cfg.Subscription.APIKeyEnv,
	})

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
