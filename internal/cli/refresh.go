// Package cli provides Cobra command definitions for aim.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewRefreshCommand creates the refresh command.
func NewRefreshCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "refresh",
		Short: "Refetch the release listing",
		Long: `Invalidate the local release cache and fetch the listing again,
ignoring the 15 minute TTL.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := newDeps()
			if err != nil {
				return err
			}

			d.cache.Invalidate()
			res, err := d.cache.Releases(cmd.Context())
			if err != nil {
				return err
			}
			if res.Stale {
				fmt.Println("warning: remote unreachable, cache left as it was")
				return nil
			}

			fmt.Printf("Fetched %d releases\n", len(res.Releases))
			return nil
		},
	}

	return cmd
}
