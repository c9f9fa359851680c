// Package cache implements the persisted release-listing cache.
//
// The cache holds one JSON document {"fetchedAt": <unix seconds>,
// "releases": [...]} and serves reads without network access while the
// listing is younger than the TTL. Writes go to a temporary file in the
// cache directory followed by a rename, so a reader never observes a torn
// document and concurrent writers resolve to last-rename-wins.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/chazuruo/aim/internal/errors"
	"github.com/chazuruo/aim/internal/release"
)

// Fetcher retrieves the full release listing from the remote endpoint.
type Fetcher interface {
	Fetch(ctx context.Context) (release.List, error)
}

// Result is the outcome of a cache read.
type Result struct {
	// Releases is the listing, newest first.
	Releases release.List

	// FetchedAt is when the listing was retrieved from the remote.
	FetchedAt time.Time

	// Stale is true when the remote could not be reached and the listing
	// was served from an expired cache. Non-fatal; callers decide how to
	// surface it.
	Stale bool
}

// Cache provides the release listing with at most one remote fetch per
// TTL window.
type Cache struct {
	path    string
	ttl     time.Duration
	fetcher Fetcher

	// now is the clock, replaceable in tests.
	now func() time.Time

	mu    sync.Mutex
	force bool
}

// Option configures a Cache.
type Option func(*Cache)

// WithClock replaces the clock (useful for testing TTL expiry).
func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		if now != nil {
			c.now = now
		}
	}
}

// New creates a release cache persisted at path with the given TTL.
func New(path string, ttl time.Duration, fetcher Fetcher, opts ...Option) *Cache {
	c := &Cache{
		path:    path,
		ttl:     ttl,
		fetcher: fetcher,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Path returns the cache file location.
func (c *Cache) Path() string { return c.path }

// Releases returns the current release listing.
//
// A persisted listing younger than the TTL is returned without network
// access. Otherwise one remote fetch is performed; on success the persisted
// cache is atomically replaced. On fetch failure an expired cache, when
// present, is returned with Stale set; with no cache at all the error wraps
// errors.ErrUnavailable.
func (c *Cache) Releases(ctx context.Context) (Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.force {
		if doc, err := c.read(); err == nil {
			fetchedAt := time.Unix(doc.FetchedAt, 0)
			if c.now().Sub(fetchedAt) < c.ttl {
				return Result{Releases: doc.Releases, FetchedAt: fetchedAt}, nil
			}
		}
	}

	list, fetchErr := c.fetcher.Fetch(ctx)
	if fetchErr == nil {
		fetchedAt := c.now()
		if err := c.write(document{FetchedAt: fetchedAt.Unix(), Releases: list}); err != nil {
			return Result{}, err
		}
		c.force = false
		return Result{Releases: list, FetchedAt: fetchedAt}, nil
	}

	// Remote unreachable or malformed: fall back to whatever is on disk.
	if doc, err := c.read(); err == nil {
		return Result{
			Releases:  doc.Releases,
			FetchedAt: time.Unix(doc.FetchedAt, 0),
			Stale:     true,
		}, nil
	}

	return Result{}, fmt.Errorf("%w: %w", errors.ErrUnavailable, fetchErr)
}

// Invalidate forces the next Releases call to skip the TTL check and refetch.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.force = true
}

// document is the persisted cache file layout.
type document struct {
	FetchedAt int64        `json:"fetchedAt"`
	Releases  release.List `json:"releases"`
}

func (c *Cache) read() (document, error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		return document{}, &errors.CacheError{Path: c.path, Err: err}
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return document{}, &errors.CacheError{Path: c.path, Err: err}
	}
	return doc, nil
}

// write atomically replaces the cache file. The temporary file lives in the
// same directory so the final rename never crosses filesystems.
func (c *Cache) write(doc document) error {
	if doc.Releases == nil {
		// An empty listing is valid; persist it as [] rather than null.
		doc.Releases = release.List{}
	}

	dir := filepath.Dir(c.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return &errors.CacheError{Path: c.path, Err: err}
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return &errors.CacheError{Path: c.path, Err: err}
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(c.path)+".*.tmp")
	if err != nil {
		return &errors.CacheError{Path: c.path, Err: err}
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return &errors.CacheError{Path: c.path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return &errors.CacheError{Path: c.path, Err: err}
	}

	if err := os.Rename(tmpPath, c.path); err != nil {
		os.Remove(tmpPath)
		return &errors.CacheError{Path: c.path, Err: err}
	}

	return nil
}
