// Package cli provides Cobra command definitions for aim.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chazuruo/aim/internal/desktop"
)

// NewDesktopCommand creates the desktop command.
func NewDesktopCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "desktop",
		Short: "Write the desktop launcher entry",
		Long: `Create or update the .desktop launcher file so the desktop
environment starts the application through the active-version symlink.

An existing launcher file keeps its unmanaged lines; Name, Icon and
Exec are rewritten. Because Exec points at the symlink, switching
versions never requires running this again.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := newDeps()
			if err != nil {
				return err
			}

			entry := desktop.Entry{
				Path:        d.cfg.Desktop.Path,
				DisplayName: d.cfg.Desktop.DisplayName,
				Icon:        d.cfg.Desktop.Icon,
				Exec:        d.cfg.Active.LinkPath,
			}
			if err := desktop.Write(entry); err != nil {
				return err
			}

			fmt.Printf("Launcher written to %s\n", entry.Path)
			return nil
		},
	}

	return cmd
}
