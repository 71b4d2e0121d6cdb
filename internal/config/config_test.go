package config

import (
	"os"
	"testing"
)

func TestLoadDefaultsWhenAbsent(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.API.BaseURL != DefaultBaseURL {
		t.Errorf("BaseURL = %q, want default %q", cfg.API.BaseURL, DefaultBaseURL)
	}
	if cfg.Appearance.Theme != "flexoki-dark" {
		t.Errorf("Theme = %q", cfg.Appearance.Theme)
	}
	if Exists() {
		t.Error("Exists() = true before any Save")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := DefaultConfig()
	cfg.API.BaseURL = "https://travel.example.com"
	cfg.Appearance.Theme = "catppuccin-mocha"
	if err := Save(cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !Exists() {
		t.Fatal("Exists() = false after Save")
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded != cfg {
		t.Errorf("round trip: got %+v, want %+v", loaded, cfg)
	}
}

func TestBaseURLEnvOverride(t *testing.T) {
	t.Setenv("WAYFARER_API_URL", "http://override:9000")

	cfg := DefaultConfig()
	if got := BaseURL(cfg); got != "http://override:9000" {
		t.Errorf("BaseURL = %q, want env override", got)
	}

	os.Unsetenv("WAYFARER_API_URL")
	if got := BaseURL(cfg); got != DefaultBaseURL {
		t.Errorf("BaseURL = %q, want default", got)
	}
}
