// Package cli provides Cobra command definitions for aim.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chazuruo/aim/internal/errors"
)

// NewDownloadCommand creates the download command.
func NewDownloadCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "download <version>",
		Short: "Download a version without activating it",
		Long: `Fetch the AppImage for the given version into the artifact store.

The active version is not changed. Downloads stream to a temporary file
and only appear in the store once complete, so an interrupted download
leaves nothing behind.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDownload(cmd.Context(), args[0])
		},
	}

	return cmd
}

func runDownload(ctx context.Context, version string) error {
	d, err := newDeps()
	if err != nil {
		return err
	}

	if d.store.Has(version) {
		fmt.Printf("%s %s is already downloaded\n", d.cfg.App.Name, version)
		return nil
	}

	res, err := d.cache.Releases(ctx)
	if err != nil {
		return err
	}
	rel, ok := res.Releases.Find(version)
	if !ok {
		return fmt.Errorf("%s: %w", version, errors.ErrUnknownVersion)
	}

	label := fmt.Sprintf("Downloading %s %s...", d.cfg.App.Name, version)
	err = d.withProgress(ctx, label, func(ctx context.Context) error {
		_, err := d.store.Ensure(ctx, rel)
		return err
	})
	if err != nil {
		return err
	}

	fmt.Printf("Downloaded to %s\n", d.store.Path(version))
	return nil
}
