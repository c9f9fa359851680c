// Package active maintains the symlink pointing at the current version.
//
// The pointer is only ever replaced by renaming a freshly created symlink
// over it. Renames are atomic on POSIX filesystems, so readers observe
// either the old target or the new one and never a missing pointer,
// including across concurrent invocations of the tool.
package active

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/chazuruo/aim/internal/cache"
	"github.com/chazuruo/aim/internal/errors"
	"github.com/chazuruo/aim/internal/store"
)

// Resolver provides the release listing used to resolve a version string
// to a download URL.
type Resolver interface {
	Releases(ctx context.Context) (cache.Result, error)
}

// Manager switches the active version.
type Manager struct {
	linkPath string
	store    *store.Store
	resolver Resolver
}

// NewManager creates a Manager that maintains the symlink at linkPath.
func NewManager(linkPath string, st *store.Store, resolver Resolver) *Manager {
	return &Manager{
		linkPath: linkPath,
		store:    st,
		resolver: resolver,
	}
}

// LinkPath returns the active pointer location.
func (m *Manager) LinkPath() string { return m.linkPath }

// Activate makes the given version the active one.
//
// The artifact is downloaded if absent, then the pointer is swapped with an
// atomic rename. On any failure both the artifact store and the pointer are
// left as they were, so Activate is safely retryable.
func (m *Manager) Activate(ctx context.Context, version string) error {
	res, err := m.resolver.Releases(ctx)
	if err != nil {
		return err
	}

	rel, ok := res.Releases.Find(version)
	if !ok {
		// A version already in the store can be activated even when the
		// listing no longer carries it (rollback after remote pruning).
		if !m.store.Has(version) {
			return fmt.Errorf("%s: %w", version, errors.ErrUnknownVersion)
		}
		rel.Version = version
	}

	artifactPath, err := m.store.Ensure(ctx, rel)
	if err != nil {
		return err
	}

	// Already active and pointing at this artifact: nothing to do.
	if current, err := m.Current(); err == nil && current == version {
		return nil
	}

	target, err := filepath.Abs(artifactPath)
	if err != nil {
		return &errors.ActivationError{Version: version, Op: "resolve", Err: err}
	}

	return m.swap(version, target)
}

// swap atomically repoints the symlink at target. The replacement symlink
// is created under a unique temporary name next to the pointer and renamed
// into place; the pointer path itself is never unlinked.
func (m *Manager) swap(version, target string) error {
	dir := filepath.Dir(m.linkPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return &errors.ActivationError{Version: version, Op: "mkdir", Err: err}
	}

	tmpLink := filepath.Join(dir, "."+filepath.Base(m.linkPath)+"."+uuid.NewString()+".tmp")
	if err := os.Symlink(target, tmpLink); err != nil {
		return &errors.ActivationError{Version: version, Op: "link", Err: err}
	}

	if err := os.Rename(tmpLink, m.linkPath); err != nil {
		os.Remove(tmpLink)
		return &errors.ActivationError{Version: version, Op: "rename", Err: err}
	}

	return nil
}

// Current resolves the active pointer back to a version string by
// inspecting the artifact name it targets. Returns errors.ErrNotSet when
// the pointer does not exist.
func (m *Manager) Current() (string, error) {
	target, err := os.Readlink(m.linkPath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.ErrNotSet
		}
		return "", errors.Wrap(err, "reading active pointer")
	}

	version, ok := m.store.VersionFromFilename(filepath.Base(target))
	if !ok {
		return "", fmt.Errorf("active pointer targets foreign file %s: %w", target, errors.ErrNotSet)
	}
	return version, nil
}

// Target returns the absolute path the active pointer resolves to.
// Returns errors.ErrNotSet when the pointer does not exist.
func (m *Manager) Target() (string, error) {
	target, err := os.Readlink(m.linkPath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.ErrNotSet
		}
		return "", errors.Wrap(err, "reading active pointer")
	}
	if !filepath.IsAbs(target) {
		target = filepath.Join(filepath.Dir(m.linkPath), target)
	}
	return target, nil
}
