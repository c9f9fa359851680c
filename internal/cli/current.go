// Package cli provides Cobra command definitions for aim.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chazuruo/aim/internal/errors"
)

// NewCurrentCommand creates the current command.
func NewCurrentCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "current",
		Short: "Print the active version",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := newDeps()
			if err != nil {
				return err
			}

			current, err := d.manager.Current()
			if err != nil {
				if errors.IsNotSet(err) {
					fmt.Println("no active version")
					return nil
				}
				return err
			}

			fmt.Println(current)
			return nil
		},
	}

	return cmd
}
