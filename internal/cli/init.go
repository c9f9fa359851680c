// Package cli provides Cobra command definitions for aim.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/chazuruo/aim/internal/config"
)

// InitOptions contains the options for the init command.
type InitOptions struct {
	ConfigPath string

	// Scriptable/flag options for --no-input mode
	AppName    string
	ReleaseURL string
	Force      bool
}

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	opts := &InitOptions{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the aim configuration file",
		Long: `Write a config file with the current defaults so paths, TTL and the
release endpoint can be edited.

Interactively asks for the application name and release listing URL.
Use --no-input with flags for scripted setup.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(opts)
		},
	}

	cmd.Flags().StringVar(&opts.ConfigPath, "config", "", "config file path")
	cmd.Flags().StringVar(&opts.AppName, "app-name", "", "application name (artifact filename prefix)")
	cmd.Flags().StringVar(&opts.ReleaseURL, "release-url", "", "release listing endpoint")
	cmd.Flags().BoolVar(&opts.Force, "force", false, "overwrite an existing config file")

	return cmd
}

func runInit(opts *InitOptions) error {
	cfg := config.DefaultConfig()

	path := opts.ConfigPath
	if path == "" {
		path = defaultConfigPath()
	}

	if _, err := os.Stat(path); err == nil && !opts.Force {
		return fmt.Errorf("config file already exists at %s (use --force to overwrite)", path)
	}

	if !IsNoInput() {
		if err := initForm(cfg); err != nil {
			return err
		}
	} else {
		if opts.AppName != "" {
			cfg.App.Name = opts.AppName
		}
		if opts.ReleaseURL != "" {
			cfg.App.ReleaseURL = opts.ReleaseURL
		}
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	if err := config.Write(path, cfg); err != nil {
		return err
	}

	fmt.Printf("Config written to %s\n", path)
	return nil
}

// initForm asks for the values most installs change.
func initForm(cfg *config.Config) error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Application name").
				Description("Used as the artifact filename prefix").
				Value(&cfg.App.Name),
			huh.NewInput().
				Title("Release listing URL").
				Description("Endpoint returning the JSON release listing").
				Value(&cfg.App.ReleaseURL),
		),
	).Run()
}

// defaultConfigPath is where init writes when no config file exists yet.
func defaultConfigPath() string {
	if existing := config.DetectConfigPath(); existing != "" {
		return existing
	}
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "aim", "config.toml")
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.toml")
	}
	return filepath.Join(homeDir, ".config", "aim", "config.toml")
}
