package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/chazuruo/aim/internal/cli"
)

// Version is set at build time using ldflags
var Version = "dev"

// Commit is set at build time using ldflags
var Commit = "unknown"

// Date is set at build time using ldflags
var Date = "unknown"

func main() {
	rootCmd := &cobra.Command{
		Use:   "aim",
		Short: "AppImage version manager",
		Long: `aim downloads AppImage releases of an application, keeps old
versions around for rollback, and switches the active version by
atomically repointing a single symlink.

Run without arguments for the interactive menu.`,
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cli.IsNoInput() {
				return cmd.Help()
			}
			return cli.RunMenu(cmd.Context())
		},
	}

	// Add global flags
	cli.AddGlobalFlags(rootCmd)

	rootCmd.CompletionOptions.DisableDefaultCmd = true

	// Add subcommands
	rootCmd.AddCommand(cli.NewInitCommand())
	rootCmd.AddCommand(cli.NewStatusCommand())
	rootCmd.AddCommand(cli.NewListCommand())
	rootCmd.AddCommand(cli.NewUpdateCommand())
	rootCmd.AddCommand(cli.NewUseCommand())
	rootCmd.AddCommand(cli.NewDownloadCommand())
	rootCmd.AddCommand(cli.NewCurrentCommand())
	rootCmd.AddCommand(cli.NewRefreshCommand())
	rootCmd.AddCommand(cli.NewDesktopCommand())
	rootCmd.AddCommand(cli.NewVersionCommand(Version, Commit, Date))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
