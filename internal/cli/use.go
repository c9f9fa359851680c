// Package cli provides Cobra command definitions for aim.
package cli

import (
	"github.com/spf13/cobra"
)

// NewUseCommand creates the use command.
func NewUseCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "use <version>",
		Short: "Activate a specific version",
		Long: `Make the given version the active one.

The version is downloaded first if it is not already in the artifact
store. Versions no longer present in the remote listing can still be
activated when their artifact is downloaded (rollback).

Examples:
  aim use 1.2.3
  aim list --local    # see what can be activated offline`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := newDeps()
			if err != nil {
				return err
			}
			return activateVersion(cmd.Context(), d, args[0])
		},
	}

	return cmd
}
