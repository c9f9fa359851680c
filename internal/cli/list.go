// Package cli provides Cobra command definitions for aim.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/rodaine/table"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/chazuruo/aim/internal/errors"
)

// listEntry is one row of the list output.
type listEntry struct {
	Version   string `json:"version" yaml:"version"`
	Installed bool   `json:"installed" yaml:"installed"`
	Active    bool   `json:"active" yaml:"active"`
}

// ListOptions contains the options for the list command.
type ListOptions struct {
	Local  bool
	Format string
}

// NewListCommand creates the list command.
func NewListCommand() *cobra.Command {
	opts := &ListOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List available versions",
		Long: `List application versions, newest first.

By default the remote release listing is shown (served from the local
cache while fresh), annotated with which versions are downloaded and
which one is active. With --local only downloaded versions are shown.

Examples:
  aim list                 # remote listing in a table
  aim list --local         # downloaded versions only
  aim list --format json   # machine-readable output`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd.Context(), opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Local, "local", false, "only show downloaded versions")
	cmd.Flags().StringVar(&opts.Format, "format", "table", "output format (table, json, yaml, plain)")

	return cmd
}

func runList(ctx context.Context, opts *ListOptions) error {
	d, err := newDeps()
	if err != nil {
		return err
	}

	entries, stale, err := collectList(ctx, d, opts.Local)
	if err != nil {
		return err
	}

	if stale {
		fmt.Fprintln(os.Stderr, "warning: remote unreachable, listing served from stale cache")
	}

	switch opts.Format {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	case "yaml":
		return yaml.NewEncoder(os.Stdout).Encode(entries)
	case "plain":
		for _, e := range entries {
			fmt.Println(e.Version)
		}
		return nil
	case "table":
		printListTable(entries)
		return nil
	default:
		return fmt.Errorf("unknown format %q (want table, json, yaml or plain)", opts.Format)
	}
}

func collectList(ctx context.Context, d *deps, localOnly bool) ([]listEntry, bool, error) {
	installed := map[string]bool{}
	local, err := d.store.Installed()
	if err != nil {
		return nil, false, err
	}
	for _, v := range local {
		installed[v] = true
	}

	current, err := d.manager.Current()
	if err != nil && !errors.IsNotSet(err) {
		return nil, false, err
	}

	if localOnly {
		entries := make([]listEntry, 0, len(local))
		for _, v := range local {
			entries = append(entries, listEntry{Version: v, Installed: true, Active: v == current})
		}
		return entries, false, nil
	}

	res, err := d.cache.Releases(ctx)
	if err != nil {
		return nil, false, err
	}

	sorted := res.Releases
	sorted.Sort()
	entries := make([]listEntry, 0, len(sorted))
	for _, r := range sorted {
		entries = append(entries, listEntry{
			Version:   r.Version,
			Installed: installed[r.Version],
			Active:    r.Version == current,
		})
	}
	return entries, res.Stale, nil
}

func printListTable(entries []listEntry) {
	headerStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)

	tbl := table.New("VERSION", "INSTALLED", "ACTIVE")
	tbl.WithHeaderFormatter(func(format string, vals ...interface{}) string {
		return headerStyle.Render(fmt.Sprintf(format, vals...))
	})

	mark := func(b bool) string {
		if b {
			return "yes"
		}
		return ""
	}

	for _, e := range entries {
		active := ""
		if e.Active {
			active = "*"
		}
		tbl.AddRow(e.Version, mark(e.Installed), active)
	}

	tbl.Print()
}
