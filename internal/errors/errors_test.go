package errors_test

import (
	"errors"
	"fmt"
	"testing"

	aimerrors "github.com/chazuruo/aim/internal/errors"
)

// TestBaseErrors verifies that all base error types have correct messages.
func TestBaseErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"ErrUnavailable", aimerrors.ErrUnavailable, "release data unavailable"},
		{"ErrUnknownVersion", aimerrors.ErrUnknownVersion, "unknown version"},
		{"ErrStaleData", aimerrors.ErrStaleData, "stale release data"},
		{"ErrNotSet", aimerrors.ErrNotSet, "no active version"},
		{"ErrCanceled", aimerrors.ErrCanceled, "canceled"},
		{"ErrIO", aimerrors.ErrIO, "I/O error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestDownloadError verifies DownloadError formatting and unwrapping.
func TestDownloadError(t *testing.T) {
	tests := []struct {
		name string
		err  *aimerrors.DownloadError
		want string
	}{
		{
			name: "with URL",
			err:  &aimerrors.DownloadError{Version: "1.2.3", URL: "https://example.com/a", Err: fmt.Errorf("connection reset")},
			want: "download 1.2.3: connection reset\n  url: https://example.com/a",
		},
		{
			name: "without URL",
			err:  &aimerrors.DownloadError{Version: "1.2.3", Err: fmt.Errorf("disk full")},
			want: "download 1.2.3: disk full",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}

	t.Run("Unwrap returns original error", func(t *testing.T) {
		original := aimerrors.ErrIO
		wrapped := &aimerrors.DownloadError{Version: "1.0.0", Err: original}
		if !errors.Is(wrapped, original) {
			t.Error("errors.Is should find the wrapped error")
		}
	})
}

// TestActivationError verifies ActivationError formatting.
func TestActivationError(t *testing.T) {
	tests := []struct {
		name string
		err  *aimerrors.ActivationError
		want string
	}{
		{
			name: "with op",
			err:  &aimerrors.ActivationError{Version: "1.2.3", Op: "rename", Err: fmt.Errorf("permission denied")},
			want: "activate 1.2.3: rename: permission denied",
		},
		{
			name: "without op",
			err:  &aimerrors.ActivationError{Version: "1.2.3", Err: fmt.Errorf("boom")},
			want: "activate 1.2.3: boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestCacheError verifies CacheError formatting.
func TestCacheError(t *testing.T) {
	withPath := &aimerrors.CacheError{Path: "/tmp/releases.json", Err: fmt.Errorf("bad json")}
	if got, want := withPath.Error(), "cache /tmp/releases.json: bad json"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	withoutPath := &aimerrors.CacheError{Err: fmt.Errorf("bad json")}
	if got, want := withoutPath.Error(), "cache: bad json"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

// TestWrap verifies Wrap adds context and preserves errors.Is.
func TestWrap(t *testing.T) {
	wrapped := aimerrors.Wrap(aimerrors.ErrUnavailable, "readCache")

	if got, want := wrapped.Error(), "readCache: release data unavailable"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(wrapped, aimerrors.ErrUnavailable) {
		t.Error("errors.Is should find the wrapped sentinel")
	}
}

// TestHelpers verifies the Is* and As* helper functions.
func TestHelpers(t *testing.T) {
	t.Run("Is helpers", func(t *testing.T) {
		if !aimerrors.IsUnavailable(aimerrors.Wrap(aimerrors.ErrUnavailable, "op")) {
			t.Error("IsUnavailable should match wrapped sentinel")
		}
		if !aimerrors.IsUnknownVersion(fmt.Errorf("1.2.3: %w", aimerrors.ErrUnknownVersion)) {
			t.Error("IsUnknownVersion should match fmt-wrapped sentinel")
		}
		if !aimerrors.IsStaleData(aimerrors.ErrStaleData) {
			t.Error("IsStaleData should match sentinel")
		}
		if !aimerrors.IsNotSet(aimerrors.ErrNotSet) {
			t.Error("IsNotSet should match sentinel")
		}
		if aimerrors.IsCanceled(aimerrors.ErrNotSet) {
			t.Error("IsCanceled should not match a different sentinel")
		}
	})

	t.Run("As helpers", func(t *testing.T) {
		var err error = fmt.Errorf("outer: %w", &aimerrors.DownloadError{Version: "1.0.0", Err: aimerrors.ErrIO})

		de, ok := aimerrors.AsDownloadError(err)
		if !ok {
			t.Fatal("AsDownloadError should find the typed error")
		}
		if de.Version != "1.0.0" {
			t.Errorf("Version = %q, want %q", de.Version, "1.0.0")
		}

		if _, ok := aimerrors.AsActivationError(err); ok {
			t.Error("AsActivationError should not match a DownloadError")
		}
	})
}
