// Package cli provides Cobra command definitions for aim.
package cli

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/chazuruo/aim/internal/errors"
	"github.com/chazuruo/aim/internal/platform"
)

var menuTitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)

// RunMenu runs the interactive menu loop. It is what a bare 'aim'
// invocation does: show options, run the chosen action, loop until the
// user quits or aborts.
func RunMenu(ctx context.Context) error {
	for {
		var choice string
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[string]().
					Title("aim - AppImage version manager").
					Options(
						huh.NewOption("Check current setup", "status"),
						huh.NewOption("Update to latest version", "update"),
						huh.NewOption("Switch version", "pick"),
						huh.NewOption("Refresh release listing", "refresh"),
						huh.NewOption("Help", "help"),
						huh.NewOption("Quit", "quit"),
					).
					Value(&choice),
			),
		)

		if err := form.Run(); err != nil {
			if stderrors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return fmt.Errorf("form error: %w", err)
		}

		var err error
		switch choice {
		case "status":
			err = runStatus(ctx, &StatusOptions{Format: "text"})
		case "update":
			err = runUpdate(ctx)
		case "pick":
			err = runPickVersion(ctx)
		case "refresh":
			err = runRefreshInMenu(ctx)
		case "help":
			err = printMenuHelp()
		case "quit":
			return nil
		}

		if err != nil {
			if errors.IsCanceled(err) || stderrors.Is(err, context.Canceled) {
				continue
			}
			fmt.Printf("error: %v\n", err)
		}
		fmt.Println()
	}
}

// runPickVersion lets the user choose a version from the listing and
// activates it.
func runPickVersion(ctx context.Context) error {
	d, err := newDeps()
	if err != nil {
		return err
	}

	entries, stale, err := collectList(ctx, d, false)
	if err != nil {
		return err
	}
	if stale {
		fmt.Println("warning: remote unreachable, using stale release listing")
	}
	if len(entries) == 0 {
		return fmt.Errorf("no versions available")
	}

	options := make([]huh.Option[string], 0, len(entries))
	for _, e := range entries {
		label := e.Version
		if e.Active {
			label += "  (active)"
		} else if e.Installed {
			label += "  (downloaded)"
		}
		options = append(options, huh.NewOption(label, e.Version))
	}

	var version string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Switch version").
				Options(options...).
				Value(&version),
		),
	)
	if err := form.Run(); err != nil {
		if stderrors.Is(err, huh.ErrUserAborted) {
			return nil
		}
		return fmt.Errorf("form error: %w", err)
	}

	return activateVersion(ctx, d, version)
}

func runRefreshInMenu(ctx context.Context) error {
	d, err := newDeps()
	if err != nil {
		return err
	}

	d.cache.Invalidate()
	res, err := d.cache.Releases(ctx)
	if err != nil {
		return err
	}
	if res.Stale {
		fmt.Println("warning: remote unreachable, cache left as it was")
		return nil
	}
	fmt.Printf("Fetched %d releases\n", len(res.Releases))
	return nil
}

func printMenuHelp() error {
	d, err := newDeps()
	if err != nil {
		return err
	}
	cfg := d.cfg

	fmt.Println(menuTitleStyle.Render("How it works"))
	fmt.Printf("  AppImages are stored in:  %s\n", cfg.Store.Dir)
	fmt.Printf("  The active version is a symlink at:  %s\n", cfg.Active.LinkPath)
	fmt.Printf("  The release listing is cached for %s at:  %s\n", cfg.Cache.TTL(), cfg.Cache.Path)
	fmt.Printf("  Detected platform:  %s\n", platform.Current().Key())
	fmt.Println()
	fmt.Println("  Old versions stay in the store for rollback via 'Switch version'.")
	fmt.Println("  If the network is down, the stale listing is used where possible.")
	fmt.Println("  Press Esc in any menu to go back.")
	return nil
}
