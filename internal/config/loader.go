// Package config provides configuration management for aim.
//
// This file contains config loading functionality including:
// - XDG config path detection
// - TOML file parsing
// - Environment variable overrides
// - Validation
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// DetectConfigPath searches for a config file using XDG standard paths.
// Returns the first config file found, or empty string if none exists.
//
// Search order:
// 1. $XDG_CONFIG_HOME/aim/config.toml
// 2. ~/.config/aim/config.toml
//
// Returns empty string if no config file is found (caller should use defaults).
func DetectConfigPath() string {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		configPath := filepath.Join(configHome, "aim", "config.toml")
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	configPath := filepath.Join(homeDir, ".config", "aim", "config.toml")
	if _, err := os.Stat(configPath); err == nil {
		return configPath
	}

	return ""
}

// Load loads a config from the specified path.
// If the file doesn't exist, returns an error.
// After loading, applies environment variable overrides and validates.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	// Start with defaults
	cfg := DefaultConfig()

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	applyEnvOverrides(cfg)
	expandPaths(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// LoadWithDefaults attempts to load a config from XDG standard paths.
// If no config file is found, returns a config with all default values.
// If a config file is found but fails to load/validate, returns an error.
func LoadWithDefaults() (*Config, error) {
	configPath := DetectConfigPath()
	if configPath == "" {
		cfg := DefaultConfig()
		applyEnvOverrides(cfg)
		expandPaths(cfg)
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("config validation failed: %w", err)
		}
		return cfg, nil
	}

	return Load(configPath)
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables follow the pattern: AIM_<SECTION>_<FIELD>
//
// Examples:
// - AIM_APP_NAME overrides [app].name
// - AIM_APP_RELEASE_URL overrides [app].release_url
// - AIM_CACHE_TTL_SECONDS overrides [cache].ttl_seconds
//
// Boolean fields: use "true"/"false" strings.
func applyEnvOverrides(c *Config) {
	applyString := func(key string, target *string) {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			*target = val
		}
	}

	applyInt := func(key string, target *int) {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			var i int
			if _, err := fmt.Sscanf(val, "%d", &i); err == nil {
				*target = i
			}
		}
	}

	// App section
	applyString("AIM_APP_NAME", &c.App.Name)
	applyString("AIM_APP_RELEASE_URL", &c.App.ReleaseURL)

	// Cache section
	applyString("AIM_CACHE_PATH", &c.Cache.Path)
	applyInt("AIM_CACHE_TTL_SECONDS", &c.Cache.TTLSeconds)

	// Store section
	applyString("AIM_STORE_DIR", &c.Store.Dir)

	// Active section
	applyString("AIM_ACTIVE_LINK_PATH", &c.Active.LinkPath)

	// Desktop section
	applyString("AIM_DESKTOP_PATH", &c.Desktop.Path)
	applyString("AIM_DESKTOP_DISPLAY_NAME", &c.Desktop.DisplayName)
	applyString("AIM_DESKTOP_ICON", &c.Desktop.Icon)

	// Download section
	applyInt("AIM_DOWNLOAD_TIMEOUT_SECONDS", &c.Download.TimeoutSeconds)
	applyString("AIM_DOWNLOAD_USER_AGENT", &c.Download.UserAgent)
}

// expandPaths expands ~ to the home directory in all path fields.
func expandPaths(c *Config) {
	for _, p := range []*string{
		&c.Cache.Path,
		&c.Store.Dir,
		&c.Active.LinkPath,
		&c.Desktop.Path,
	} {
		*p = expandTilde(*p)
	}
}

func expandTilde(path string) string {
	if path == "~" {
		if homeDir, err := os.UserHomeDir(); err == nil {
			return homeDir
		}
		return path
	}
	if strings.HasPrefix(path, "~/") {
		if homeDir, err := os.UserHomeDir(); err == nil {
			return filepath.Join(homeDir, strings.TrimPrefix(path, "~/"))
		}
	}
	return path
}
