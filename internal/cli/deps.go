// Package cli provides Cobra command definitions for aim.
package cli

import (
	"context"
	"fmt"
	"net/http"

	"github.com/chazuruo/aim/internal/active"
	"github.com/chazuruo/aim/internal/cache"
	"github.com/chazuruo/aim/internal/config"
	"github.com/chazuruo/aim/internal/release"
	"github.com/chazuruo/aim/internal/store"
	"github.com/chazuruo/aim/internal/tui"
)

// deps wires the core components from a loaded config.
type deps struct {
	cfg     *config.Config
	cache   *cache.Cache
	store   *store.Store
	manager *active.Manager
}

// newDeps loads the config and builds the component graph.
func newDeps() (*deps, error) {
	cfg, err := config.LoadWithDefaults()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return newDepsWith(cfg), nil
}

// newDepsWith builds the component graph from an explicit config.
func newDepsWith(cfg *config.Config) *deps {
	httpClient := &http.Client{}
	if cfg.Download.TimeoutSeconds > 0 {
		httpClient.Timeout = cfg.Download.Timeout()
	}

	client := release.NewClient(cfg.App.ReleaseURL,
		release.WithHTTPClient(httpClient),
		release.WithUserAgent(cfg.Download.UserAgent),
	)

	c := cache.New(cfg.Cache.Path, cfg.Cache.TTL(), client)

	st := store.New(cfg.Store.Dir, cfg.App.Name,
		store.WithHTTPClient(httpClient),
		store.WithUserAgent(cfg.Download.UserAgent),
	)

	return &deps{
		cfg:     cfg,
		cache:   c,
		store:   st,
		manager: active.NewManager(cfg.Active.LinkPath, st, c),
	}
}

// withProgress runs fn with download progress wired up: a progress bar TUI
// normally, a plain byte counter under --no-input.
func (d *deps) withProgress(ctx context.Context, label string, fn func(ctx context.Context) error) error {
	if IsNoInput() {
		d.store.SetProgress(plainProgress(label))
		defer d.store.SetProgress(nil)
		err := fn(ctx)
		fmt.Println()
		return err
	}

	return tui.RunDownload(ctx, label, func(ctx context.Context, report store.ProgressFunc) error {
		d.store.SetProgress(report)
		defer d.store.SetProgress(nil)
		return fn(ctx)
	})
}

// plainProgress prints carriage-return progress lines to stdout.
func plainProgress(label string) store.ProgressFunc {
	printed := false
	return func(downloaded, total int64) {
		if !printed {
			fmt.Println(label)
			printed = true
		}
		if total > 0 {
			fmt.Printf("\r  %.1f%% (%dMB/%dMB)",
				float64(downloaded)/float64(total)*100,
				downloaded/1024/1024, total/1024/1024)
		} else {
			fmt.Printf("\r  %dMB", downloaded/1024/1024)
		}
	}
}
