// Package config loads and saves wayfarer configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// DefaultBaseURL is used when neither config nor environment set one.
const DefaultBaseURL = "http://localhost:8000"

// Config holds all wayfarer configuration.
type Config struct {
	API        APIConfig        `toml:"api"`
	Appearance AppearanceConfig `toml:"appearance"`
}

// APIConfig holds remote API settings.
type APIConfig struct {
	BaseURL string `toml:"base_url,omitempty"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		API: APIConfig{
			BaseURL: DefaultBaseURL,
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
	}
}

// Dir returns the XDG-compliant config directory.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "wayfarer")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "wayfarer")
}

// Path returns the full path to the config file.
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(Path())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	if err := os.MkdirAll(Dir(), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(Path(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(Path())
	return err == nil
}

// BaseURL returns the API base URL from env var or config, in that order.
func BaseURL(cfg Config) string {
	if url := os.Getenv("WAYFARER_API_URL"); url != "" {
		return url
	}
	if cfg.API.BaseURL != "" {
		return cfg.API.BaseURL
	}
	return DefaultBaseURL
}
