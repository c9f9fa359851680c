// Package cli provides Cobra command definitions for aim.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chazuruo/aim/internal/errors"
)

// NewUpdateCommand creates the update command.
func NewUpdateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update to the latest version",
		Long: `Download the latest version if it is not already present and make
it the active one.

The release listing is served from the local cache while fresh (15
minutes); run 'aim refresh' first to force a refetch. Older versions
stay in the artifact store for rollback with 'aim use'.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUpdate(cmd.Context())
		},
	}

	return cmd
}

func runUpdate(ctx context.Context) error {
	d, err := newDeps()
	if err != nil {
		return err
	}

	res, err := d.cache.Releases(ctx)
	if err != nil {
		return err
	}
	if res.Stale {
		fmt.Println("warning: remote unreachable, using stale release listing")
	}

	latest, ok := res.Releases.Latest()
	if !ok {
		return fmt.Errorf("release listing is empty: %w", errors.ErrUnknownVersion)
	}

	if current, err := d.manager.Current(); err == nil && current == latest.Version {
		fmt.Printf("Already on latest version: %s\n", current)
		return nil
	}

	return activateVersion(ctx, d, latest.Version)
}

// activateVersion runs Activate with download progress and prints the result.
func activateVersion(ctx context.Context, d *deps, version string) error {
	needsDownload := !d.store.Has(version)

	run := func(ctx context.Context) error {
		return d.manager.Activate(ctx, version)
	}

	var err error
	if needsDownload {
		label := fmt.Sprintf("Downloading %s %s...", d.cfg.App.Name, version)
		err = d.withProgress(ctx, label, run)
	} else {
		err = run(ctx)
	}
	if err != nil {
		return err
	}

	fmt.Printf("%s %s is now active\n", d.cfg.App.Name, version)
	return nil
}
