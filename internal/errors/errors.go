// Package errors provides a structured error type hierarchy for the aim CLI.
//
// This package defines base error types for the failure modes of the
// version cache and the active-version switch, wrapped error types that add
// contextual information, and helper functions for error wrapping and type
// checking.
//
// # Error Types
//
// Base errors (sentinel errors):
//   - ErrUnavailable - no release data and the remote could not be reached
//   - ErrUnknownVersion - the requested version is not in the release list
//   - ErrStaleData - data served from an expired cache (non-fatal)
//   - ErrNotSet - no active version pointer exists
//   - ErrCanceled - user canceled operation
//   - ErrIO - file I/O error
//
// Wrapped error types (add context):
//   - DownloadError{Version, URL, Err} - artifact download failures
//   - ActivationError{Version, Op, Err} - pointer swap failures
//   - CacheError{Path, Err} - cache read/write failures
//
// # Usage
//
//	// Use sentinel errors directly
//	return errors.ErrUnknownVersion
//
//	// Wrap with context using Wrap
//	return errors.Wrap(err, "readCache")
//
//	// Use structured error types
//	return &errors.DownloadError{Version: "1.2.3", URL: url, Err: err}
//
//	// Check error types
//	if errors.IsUnavailable(err) {
//	    // handle no-data-no-network
//	}
package errors

import (
	"errors"
	"fmt"
)

// Base error types (sentinel errors).
var (
	// ErrUnavailable indicates there is no cached data and the remote
	// listing could not be fetched.
	ErrUnavailable = baseError("release data unavailable")

	// ErrUnknownVersion indicates the requested version does not exist
	// in the release listing.
	ErrUnknownVersion = baseError("unknown version")

	// ErrStaleData indicates data was served from an expired cache.
	// It is a warning, not a failure.
	ErrStaleData = baseError("stale release data")

	// ErrNotSet indicates no active version pointer exists.
	ErrNotSet = baseError("no active version")

	// ErrCanceled indicates the user canceled an operation.
	ErrCanceled = baseError("canceled")

	// ErrIO indicates a file I/O error.
	ErrIO = baseError("I/O error")
)

// baseError is a string that implements error.
type baseError string

func (e baseError) Error() string { return string(e) }

// DownloadError represents a failure while fetching an artifact.
// The artifact store is guaranteed untouched when this is returned.
type DownloadError struct {
	// Version is the release version being downloaded.
	Version string
	// URL is the download URL (optional).
	URL string
	// Err is the underlying error.
	Err error
}

func (e *DownloadError) Error() string {
	if e.URL != "" {
		return fmt.Sprintf("download %s: %s\n  url: %s", e.Version, e.Err, e.URL)
	}
	return fmt.Sprintf("download %s: %s", e.Version, e.Err)
}

func (e *DownloadError) Unwrap() error { return e.Err }

// ActivationError represents a failure while swapping the active pointer.
type ActivationError struct {
	// Version is the release version being activated.
	Version string
	// Op is the operation being performed (e.g., "link", "rename").
	Op string
	// Err is the underlying error.
	Err error
}

func (e *ActivationError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("activate %s: %s: %s", e.Version, e.Op, e.Err)
	}
	return fmt.Sprintf("activate %s: %s", e.Version, e.Err)
}

func (e *ActivationError) Unwrap() error { return e.Err }

// CacheError represents an error related to the persisted release cache.
type CacheError struct {
	// Path is the cache file path (optional).
	Path string
	// Err is the underlying error.
	Err error
}

func (e *CacheError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("cache %s: %s", e.Path, e.Err)
	}
	return fmt.Sprintf("cache: %s", e.Err)
}

func (e *CacheError) Unwrap() error { return e.Err }

// Wrap adds context to an error by wrapping it with an operation name.
// The returned error implements Unwrap() allowing errors.Is and errors.As
// to work with the wrapped error.
func Wrap(err error, op string) error {
	return &wrappedError{op: op, err: err}
}

// wrappedError is an error with an operation context.
type wrappedError struct {
	op  string
	err error
}

func (e *wrappedError) Error() string { return fmt.Sprintf("%s: %s", e.op, e.err) }
func (e *wrappedError) Unwrap() error { return e.err }

// IsUnavailable reports whether err is or wraps ErrUnavailable.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrUnavailable)
}

// IsUnknownVersion reports whether err is or wraps ErrUnknownVersion.
func IsUnknownVersion(err error) bool {
	return errors.Is(err, ErrUnknownVersion)
}

// IsStaleData reports whether err is or wraps ErrStaleData.
func IsStaleData(err error) bool {
	return errors.Is(err, ErrStaleData)
}

// IsNotSet reports whether err is or wraps ErrNotSet.
func IsNotSet(err error) bool {
	return errors.Is(err, ErrNotSet)
}

// IsCanceled reports whether err is or wraps ErrCanceled.
func IsCanceled(err error) bool {
	return errors.Is(err, ErrCanceled)
}

// IsIO reports whether err is or wraps ErrIO.
func IsIO(err error) bool {
	return errors.Is(err, ErrIO)
}

// AsDownloadError reports whether err can be typed as a *DownloadError.
func AsDownloadError(err error) (*DownloadError, bool) {
	var de *DownloadError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// AsActivationError reports whether err can be typed as an *ActivationError.
func AsActivationError(err error) (*ActivationError, bool) {
	var ae *ActivationError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

// AsCacheError reports whether err can be typed as a *CacheError.
func AsCacheError(err error) (*CacheError, bool) {
	var ce *CacheError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}
