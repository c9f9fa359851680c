// Package store manages the directory of downloaded AppImage artifacts.
//
// Artifacts are named <app>-<version>.AppImage and are immutable once
// downloaded. A download streams to a temporary name in the store directory
// and becomes visible only through the final rename, so the store never
// exposes a partial artifact under a version name.
package store

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/chazuruo/aim/internal/errors"
	"github.com/chazuruo/aim/internal/release"
)

// Extension is the artifact filename extension.
const Extension = ".AppImage"

// ProgressFunc is called during a download with bytes downloaded and total
// bytes. Total is -1 when the remote does not report a length.
type ProgressFunc func(downloaded, total int64)

// Store is a directory of version-named AppImage artifacts.
type Store struct {
	dir        string
	appName    string
	userAgent  string
	httpClient *http.Client
	progress   ProgressFunc
}

// Option configures a Store.
type Option func(*Store)

// WithHTTPClient sets the HTTP client (useful for testing).
func WithHTTPClient(client *http.Client) Option {
	return func(s *Store) {
		if client != nil {
			s.httpClient = client
		}
	}
}

// WithUserAgent sets the User-Agent header sent with download requests.
func WithUserAgent(ua string) Option {
	return func(s *Store) {
		if ua != "" {
			s.userAgent = ua
		}
	}
}

// WithProgress sets the download progress callback.
func WithProgress(fn ProgressFunc) Option {
	return func(s *Store) {
		s.progress = fn
	}
}

// New creates an artifact store rooted at dir for the named application.
func New(dir, appName string, opts ...Option) *Store {
	s := &Store{
		dir:        dir,
		appName:    appName,
		userAgent:  "aim",
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dir returns the store directory.
func (s *Store) Dir() string { return s.dir }

// SetProgress replaces the download progress callback.
func (s *Store) SetProgress(fn ProgressFunc) {
	s.progress = fn
}

// Path returns the final artifact path for a version.
func (s *Store) Path(version string) string {
	return filepath.Join(s.dir, s.appName+"-"+version+Extension)
}

// Has reports whether the artifact for a version is fully downloaded.
func (s *Store) Has(version string) bool {
	info, err := os.Stat(s.Path(version))
	return err == nil && info.Mode().IsRegular()
}

// Ensure makes the artifact for a release present in the store, downloading
// it if absent, and returns its path. A release carrying a SHA256 digest is
// verified before the artifact becomes visible. Any failure before the
// final rename leaves the store untouched, so Ensure is safely retryable.
func (s *Store) Ensure(ctx context.Context, rel release.Release) (string, error) {
	finalPath := s.Path(rel.Version)
	if s.Has(rel.Version) {
		return finalPath, nil
	}

	if err := s.download(ctx, rel, finalPath); err != nil {
		return "", err
	}
	return finalPath, nil
}

func (s *Store) download(ctx context.Context, rel release.Release, finalPath string) error {
	fail := func(err error) error {
		return &errors.DownloadError{Version: rel.Version, URL: rel.URL, Err: err}
	}

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fail(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rel.URL, nil)
	if err != nil {
		return fail(err)
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fail(err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fail(fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	tmp, err := os.CreateTemp(s.dir, "."+filepath.Base(finalPath)+".*.partial")
	if err != nil {
		return fail(err)
	}
	tmpPath := tmp.Name()
	defer func() {
		tmp.Close()
		os.Remove(tmpPath)
	}()

	total := resp.ContentLength
	var downloaded int64
	if s.progress != nil {
		s.progress(0, total)
	}

	hash := sha256.New()
	buf := make([]byte, 32*1024)
	for {
		n, readErr := resp.Body.Read(buf)
		if n > 0 {
			if _, writeErr := tmp.Write(buf[:n]); writeErr != nil {
				return fail(writeErr)
			}
			_, _ = hash.Write(buf[:n])
			downloaded += int64(n)
			if s.progress != nil {
				s.progress(downloaded, total)
			}
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return fail(readErr)
		}
	}

	// A short body means the stream was cut; the artifact must not
	// become visible.
	if total > 0 && downloaded != total {
		return fail(fmt.Errorf("incomplete download: got %d of %d bytes", downloaded, total))
	}

	if rel.SHA256 != "" {
		actual := hex.EncodeToString(hash.Sum(nil))
		if !strings.EqualFold(actual, rel.SHA256) {
			return fail(fmt.Errorf("checksum mismatch: expected %s, got %s", rel.SHA256, actual))
		}
	}

	if err := tmp.Sync(); err != nil {
		return fail(err)
	}
	if err := tmp.Close(); err != nil {
		return fail(err)
	}
	if err := os.Chmod(tmpPath, 0755); err != nil {
		return fail(err)
	}

	// The rename is the only step that makes the artifact visible.
	if err := os.Rename(tmpPath, finalPath); err != nil {
		return fail(err)
	}

	return nil
}

// Verify checks an installed artifact against an expected SHA256 hex digest.
func (s *Store) Verify(version, expectedSHA256 string) error {
	if expectedSHA256 == "" {
		return nil
	}

	f, err := os.Open(s.Path(version))
	if err != nil {
		return &errors.DownloadError{Version: version, Err: err}
	}
	defer func() { _ = f.Close() }()

	hash := sha256.New()
	if _, err := io.Copy(hash, f); err != nil {
		return &errors.DownloadError{Version: version, Err: err}
	}

	actual := hex.EncodeToString(hash.Sum(nil))
	if !strings.EqualFold(actual, expectedSHA256) {
		return &errors.DownloadError{
			Version: version,
			Err:     fmt.Errorf("checksum mismatch: expected %s, got %s", expectedSHA256, actual),
		}
	}
	return nil
}

// Installed returns the versions with a complete artifact in the store,
// newest first.
func (s *Store) Installed() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "listing artifact store")
	}

	var out release.List
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		version, ok := s.VersionFromFilename(entry.Name())
		if !ok {
			continue
		}
		out = append(out, release.Release{Version: version})
	}
	out.Sort()
	return out.Versions(), nil
}

// Remove deletes the artifact for a version from the store.
func (s *Store) Remove(version string) error {
	if err := os.Remove(s.Path(version)); err != nil {
		return errors.Wrap(err, "removing artifact")
	}
	return nil
}

// VersionFromFilename parses the version out of an artifact filename.
// Temporary download names and foreign files do not match.
func (s *Store) VersionFromFilename(name string) (string, bool) {
	prefix := s.appName + "-"
	if !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, Extension) {
		return "", false
	}
	version := strings.TrimSuffix(strings.TrimPrefix(name, prefix), Extension)
	if version == "" {
		return "", false
	}
	return version, true
}
