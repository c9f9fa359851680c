package store

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chazuruo/aim/internal/errors"
	"github.com/chazuruo/aim/internal/release"
)

func artifactServer(t *testing.T, body []byte) (*httptest.Server, *int) {
	t.Helper()
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.Header().Set("Content-Length", strconv.Itoa(len(body)))
		_, _ = w.Write(body)
	}))
	t.Cleanup(srv.Close)
	return srv, &requests
}

func TestEnsureDownloads(t *testing.T) {
	body := []byte("appimage payload")
	srv, _ := artifactServer(t, body)

	dir := t.TempDir()
	s := New(dir, "cursor")

	rel := release.Release{Version: "1.2.3", URL: srv.URL}
	path, err := s.Ensure(context.Background(), rel)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "cursor-1.2.3.AppImage"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, body, data)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0755), info.Mode().Perm(), "artifact should be executable")
	assert.True(t, s.Has("1.2.3"))
}

func TestEnsureIdempotent(t *testing.T) {
	srv, requests := artifactServer(t, []byte("payload"))

	s := New(t.TempDir(), "cursor")
	rel := release.Release{Version: "1.2.3", URL: srv.URL}

	ctx := context.Background()
	_, err := s.Ensure(ctx, rel)
	require.NoError(t, err)
	_, err = s.Ensure(ctx, rel)
	require.NoError(t, err)

	assert.Equal(t, 1, *requests, "a present artifact should not be downloaded again")
}

func TestEnsureReportsProgress(t *testing.T) {
	body := []byte("0123456789")
	srv, _ := artifactServer(t, body)

	var last, total int64
	s := New(t.TempDir(), "cursor", WithProgress(func(d, tot int64) {
		last, total = d, tot
	}))

	_, err := s.Ensure(context.Background(), release.Release{Version: "1.0.0", URL: srv.URL})
	require.NoError(t, err)
	assert.Equal(t, int64(len(body)), last)
	assert.Equal(t, int64(len(body)), total)
}

func TestInterruptedDownloadLeavesNothingVisible(t *testing.T) {
	// Content-Length larger than the body simulates a cut stream.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", "100")
		_, _ = w.Write([]byte("short"))
	}))
	defer srv.Close()

	dir := t.TempDir()
	s := New(dir, "cursor")

	_, err := s.Ensure(context.Background(), release.Release{Version: "1.2.3", URL: srv.URL})
	require.Error(t, err)

	de, ok := errors.AsDownloadError(err)
	require.True(t, ok)
	assert.Equal(t, "1.2.3", de.Version)

	assert.False(t, s.Has("1.2.3"))
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "failed download must not leave files in the store")

	installed, err := s.Installed()
	require.NoError(t, err)
	assert.Empty(t, installed)
}

func TestEnsureBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	s := New(t.TempDir(), "cursor")
	_, err := s.Ensure(context.Background(), release.Release{Version: "1.2.3", URL: srv.URL})
	require.Error(t, err)

	de, ok := errors.AsDownloadError(err)
	require.True(t, ok)
	assert.Contains(t, de.Err.Error(), "404")
	assert.False(t, s.Has("1.2.3"))
}

func TestEnsureChecksumVerification(t *testing.T) {
	body := []byte("checksummed payload")
	srv, _ := artifactServer(t, body)

	sum := sha256.Sum256(body)
	digest := hex.EncodeToString(sum[:])

	t.Run("matching digest", func(t *testing.T) {
		s := New(t.TempDir(), "cursor")
		_, err := s.Ensure(context.Background(), release.Release{
			Version: "1.0.0",
			URL:     srv.URL,
			SHA256:  digest,
		})
		require.NoError(t, err)
		assert.True(t, s.Has("1.0.0"))
	})

	t.Run("mismatched digest leaves nothing visible", func(t *testing.T) {
		dir := t.TempDir()
		s := New(dir, "cursor")
		_, err := s.Ensure(context.Background(), release.Release{
			Version: "1.0.0",
			URL:     srv.URL,
			SHA256:  "deadbeef",
		})
		require.Error(t, err)

		de, ok := errors.AsDownloadError(err)
		require.True(t, ok)
		assert.Contains(t, de.Err.Error(), "checksum mismatch")

		assert.False(t, s.Has("1.0.0"))
		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})
}

func TestVerify(t *testing.T) {
	body := []byte("verified payload")
	srv, _ := artifactServer(t, body)

	s := New(t.TempDir(), "cursor")
	_, err := s.Ensure(context.Background(), release.Release{Version: "1.0.0", URL: srv.URL})
	require.NoError(t, err)

	sum := sha256.Sum256(body)
	digest := hex.EncodeToString(sum[:])

	assert.NoError(t, s.Verify("1.0.0", digest))
	assert.NoError(t, s.Verify("1.0.0", ""), "empty digest skips verification")

	err = s.Verify("1.0.0", "deadbeef")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "checksum mismatch")
}

func TestInstalled(t *testing.T) {
	dir := t.TempDir()
	s := New(dir, "cursor")

	for _, name := range []string{
		"cursor-1.2.0.AppImage",
		"cursor-1.10.0.AppImage",
		"cursor-2.0.0.AppImage",
		".cursor-3.0.0.AppImage.abc123.partial",
		"other-1.0.0.AppImage",
		"notes.txt",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0755))
	}

	installed, err := s.Installed()
	require.NoError(t, err)
	assert.Equal(t, []string{"2.0.0", "1.10.0", "1.2.0"}, installed)
}

func TestInstalledMissingDir(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "missing"), "cursor")
	installed, err := s.Installed()
	require.NoError(t, err)
	assert.Nil(t, installed)
}

func TestRemove(t *testing.T) {
	dir := t.TempDir()
	s := New(dir, "cursor")
	require.NoError(t, os.WriteFile(s.Path("1.0.0"), []byte("x"), 0755))

	require.NoError(t, s.Remove("1.0.0"))
	assert.False(t, s.Has("1.0.0"))
	assert.Error(t, s.Remove("1.0.0"))
}

func TestVersionFromFilename(t *testing.T) {
	s := New(t.TempDir(), "cursor")

	tests := []struct {
		name    string
		version string
		ok      bool
	}{
		{"cursor-1.2.3.AppImage", "1.2.3", true},
		{"cursor-1.2.3-nightly.AppImage", "1.2.3-nightly", true},
		{"cursor-.AppImage", "", false},
		{"cursor-1.2.3.appimage", "", false},
		{"other-1.2.3.AppImage", "", false},
		{".cursor-1.2.3.AppImage.xyz.partial", "", false},
		{"cursor.AppImage", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			version, ok := s.VersionFromFilename(tt.name)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.version, version)
		})
	}
}
