// Package config provides configuration management for aim.
//
// The configuration is stored in TOML format and supports validation
// and default values for all fields.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Config is the top-level configuration struct for aim.
// It contains all configuration sections as embedded structs.
type Config struct {
	App      AppConfig      `toml:"app"`
	Cache    CacheConfig    `toml:"cache"`
	Store    StoreConfig    `toml:"store"`
	Active   ActiveConfig   `toml:"active"`
	Desktop  DesktopConfig  `toml:"desktop"`
	Download DownloadConfig `toml:"download"`
}

// AppConfig identifies the managed application.
type AppConfig struct {
	// Name is the application name, used in artifact filenames
	// (e.g., "cursor" produces "cursor-1.2.3.AppImage").
	Name string `toml:"name"`

	// ReleaseURL is the endpoint returning the JSON release listing.
	ReleaseURL string `toml:"release_url"`
}

// CacheConfig contains version-cache settings.
type CacheConfig struct {
	// Path is the cache file location.
	Path string `toml:"path"`

	// TTLSeconds is how long a fetched listing stays fresh.
	TTLSeconds int `toml:"ttl_seconds"`
}

// TTL returns the cache TTL as a duration.
func (c CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

// StoreConfig contains artifact-store settings.
type StoreConfig struct {
	// Dir is the directory holding downloaded AppImage files.
	Dir string `toml:"dir"`
}

// ActiveConfig contains active-pointer settings.
type ActiveConfig struct {
	// LinkPath is the symlink the launcher uses to find the current version.
	LinkPath string `toml:"link_path"`
}

// DesktopConfig contains desktop-launcher settings.
type DesktopConfig struct {
	// Path is the .desktop file location.
	Path string `toml:"path"`

	// DisplayName is the launcher entry name.
	DisplayName string `toml:"display_name"`

	// Icon is the icon name or path written to the launcher entry.
	Icon string `toml:"icon"`
}

// DownloadConfig contains artifact-download settings.
type DownloadConfig struct {
	// TimeoutSeconds bounds a single download request. Zero means no limit.
	TimeoutSeconds int `toml:"timeout_seconds"`

	// UserAgent is sent with listing and artifact requests.
	UserAgent string `toml:"user_agent"`
}

// Timeout returns the download timeout as a duration.
func (c DownloadConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// DefaultConfig returns a Config with all default values set.
// Paths follow the XDG layout: cache file under ~/.cache, artifacts under
// ~/.local/share, the active symlink under ~/.local/bin.
func DefaultConfig() *Config {
	homeDir, _ := os.UserHomeDir()

	cacheHome := os.Getenv("XDG_CACHE_HOME")
	if cacheHome == "" {
		cacheHome = filepath.Join(homeDir, ".cache")
	}
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		dataHome = filepath.Join(homeDir, ".local", "share")
	}

	return &Config{
		App: AppConfig{
			Name:       "cursor",
			ReleaseURL: "https://downloads.cursor.com/lab/releases/linux-x64.json",
		},
		Cache: CacheConfig{
			Path:       filepath.Join(cacheHome, "aim", "releases.json"),
			TTLSeconds: 900,
		},
		Store: StoreConfig{
			Dir: filepath.Join(dataHome, "aim", "app-images"),
		},
		Active: ActiveConfig{
			LinkPath: filepath.Join(homeDir, ".local", "bin", "cursor.AppImage"),
		},
		Desktop: DesktopConfig{
			Path:        filepath.Join(dataHome, "applications", "cursor.desktop"),
			DisplayName: "Cursor",
			Icon:        "cursor",
		},
		Download: DownloadConfig{
			TimeoutSeconds: 0,
			UserAgent:      "aim (https://github.com/chazuruo/aim)",
		},
	}
}

// Validate checks the configuration for valid values.
// Returns a nil error if the config is valid, or an error describing the problem.
func (c *Config) Validate() error {
	if c.App.Name == "" {
		return fmt.Errorf("app.name cannot be empty")
	}
	if c.App.ReleaseURL == "" {
		return fmt.Errorf("app.release_url cannot be empty")
	}
	if c.Cache.Path == "" {
		return fmt.Errorf("cache.path cannot be empty")
	}
	if c.Cache.TTLSeconds < 0 {
		return fmt.Errorf("cache.ttl_seconds cannot be negative; got %d", c.Cache.TTLSeconds)
	}
	if c.Store.Dir == "" {
		return fmt.Errorf("store.dir cannot be empty")
	}
	if c.Active.LinkPath == "" {
		return fmt.Errorf("active.link_path cannot be empty")
	}
	if c.Download.TimeoutSeconds < 0 {
		return fmt.Errorf("download.timeout_seconds cannot be negative; got %d", c.Download.TimeoutSeconds)
	}
	if filepath.Dir(c.Active.LinkPath) == c.Store.Dir {
		return fmt.Errorf("active.link_path cannot live inside store.dir")
	}
	return nil
}
