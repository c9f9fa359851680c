// Package cli provides Cobra command definitions for aim.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/chazuruo/aim/internal/desktop"
	"github.com/chazuruo/aim/internal/errors"
	"github.com/chazuruo/aim/internal/platform"
	"github.com/chazuruo/aim/internal/release"
)

// StatusInfo is the status report for the managed application.
type StatusInfo struct {
	App          string `json:"app" yaml:"app"`
	Platform     string `json:"platform" yaml:"platform"`
	Active       string `json:"active,omitempty" yaml:"active,omitempty"`
	LatestLocal  string `json:"latest_local,omitempty" yaml:"latest_local,omitempty"`
	LatestRemote string `json:"latest_remote,omitempty" yaml:"latest_remote,omitempty"`
	Stale        bool   `json:"stale_listing" yaml:"stale_listing"`

	PointerPath   string `json:"pointer_path" yaml:"pointer_path"`
	PointerTarget string `json:"pointer_target,omitempty" yaml:"pointer_target,omitempty"`
	DesktopExec   string `json:"desktop_exec,omitempty" yaml:"desktop_exec,omitempty"`
	BinDirInPath  bool   `json:"bin_dir_in_path" yaml:"bin_dir_in_path"`
}

// StatusOptions contains the options for the status command.
type StatusOptions struct {
	Format string
}

// NewStatusCommand creates the status command.
func NewStatusCommand() *cobra.Command {
	opts := &StatusOptions{}

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show version and launcher status",
		Long: `Display the current state of the managed application.

Shows:
- Currently active version (what the symlink points to)
- Latest locally downloaded version
- Latest remote version (cached for 15 minutes)
- Launcher diagnostics (pointer target, desktop Exec line, PATH)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.Format, "format", "text", "output format (text, json, yaml)")

	return cmd
}

func runStatus(ctx context.Context, opts *StatusOptions) error {
	d, err := newDeps()
	if err != nil {
		return err
	}

	info, err := collectStatus(ctx, d)
	if err != nil {
		return err
	}

	switch opts.Format {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(info)
	case "yaml":
		return yaml.NewEncoder(os.Stdout).Encode(info)
	case "text":
		printStatus(info)
		return nil
	default:
		return fmt.Errorf("unknown format %q (want text, json or yaml)", opts.Format)
	}
}

// collectStatus gathers the status report. A stale or unreachable remote
// degrades the report instead of failing it.
func collectStatus(ctx context.Context, d *deps) (*StatusInfo, error) {
	info := &StatusInfo{
		App:         d.cfg.App.Name,
		Platform:    platform.Current().Key(),
		PointerPath: d.cfg.Active.LinkPath,
	}

	if current, err := d.manager.Current(); err == nil {
		info.Active = current
	} else if !errors.IsNotSet(err) {
		return nil, err
	}

	if target, err := d.manager.Target(); err == nil {
		info.PointerTarget = target
	}

	if installed, err := d.store.Installed(); err == nil && len(installed) > 0 {
		info.LatestLocal = installed[0]
	}

	res, err := d.cache.Releases(ctx)
	if err == nil {
		info.Stale = res.Stale
		if latest, ok := res.Releases.Latest(); ok {
			info.LatestRemote = latest.Version
		}
	} else if !errors.IsUnavailable(err) {
		return nil, err
	}

	info.DesktopExec = desktop.ExecPath(d.cfg.Desktop.Path)
	info.BinDirInPath = dirInPath(filepath.Dir(d.cfg.Active.LinkPath))

	return info, nil
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func dirInPath(dir string) bool {
	for _, p := range filepath.SplitList(os.Getenv("PATH")) {
		if p == dir {
			return true
		}
	}
	return false
}

var (
	statusHeaderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	statusLabelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("242")).Width(24)
	statusWarnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	statusGoodStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
)

func printStatus(info *StatusInfo) {
	row := func(label, value string) {
		if value == "" {
			value = "none"
		}
		fmt.Printf("%s %s\n", statusLabelStyle.Render(label), value)
	}

	fmt.Println(statusHeaderStyle.Render(fmt.Sprintf("%s (%s)", titleCase(info.App), info.Platform)))
	row("Active version:", info.Active)
	row("Latest local:", info.LatestLocal)
	row("Latest remote:", info.LatestRemote)
	if info.Stale {
		fmt.Println(statusWarnStyle.Render("  remote unreachable, listing served from stale cache"))
	}
	fmt.Println()
	row("Pointer:", info.PointerPath)
	row("Pointer target:", info.PointerTarget)
	row("Desktop Exec:", info.DesktopExec)
	if !info.BinDirInPath {
		fmt.Println(statusWarnStyle.Render(fmt.Sprintf("  %s is not in PATH", filepath.Dir(info.PointerPath))))
	}

	fmt.Println()
	fmt.Println(updateHint(info))
}

// updateHint mirrors the advice the interactive menu gives.
func updateHint(info *StatusInfo) string {
	switch {
	case info.LatestRemote == "":
		return statusWarnStyle.Render("Remote version unknown; run 'aim refresh' when back online.")
	case info.Active == "":
		return fmt.Sprintf("No active version. Run 'aim update' to install %s.", info.LatestRemote)
	case release.Compare(info.Active, info.LatestRemote) < 0:
		return fmt.Sprintf("Update available: %s -> %s. Run 'aim update'.", info.Active, info.LatestRemote)
	default:
		return statusGoodStyle.Render("You are on the latest version.")
	}
}
