package release

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientFetch(t *testing.T) {
	t.Run("valid listing", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`[{"version":"1.2.3","url":"https://example.com/a"},{"version":"1.2.4","url":"https://example.com/b"}]`))
		}))
		defer srv.Close()

		list, err := NewClient(srv.URL).Fetch(context.Background())
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, "1.2.3", list[0].Version)
		assert.Equal(t, "https://example.com/b", list[1].URL)
	})

	t.Run("empty array is valid", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`[]`))
		}))
		defer srv.Close()

		list, err := NewClient(srv.URL).Fetch(context.Background())
		require.NoError(t, err)
		assert.Empty(t, list)
	})

	t.Run("sends user agent", func(t *testing.T) {
		var gotUA string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotUA = r.Header.Get("User-Agent")
			_, _ = w.Write([]byte(`[]`))
		}))
		defer srv.Close()

		_, err := NewClient(srv.URL, WithUserAgent("aim-test/1.0")).Fetch(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "aim-test/1.0", gotUA)
	})

	t.Run("non-200 status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "nope", http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		_, err := NewClient(srv.URL).Fetch(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "503")
	})

	t.Run("malformed JSON", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"not":"an array"`))
		}))
		defer srv.Close()

		_, err := NewClient(srv.URL).Fetch(context.Background())
		assert.Error(t, err)
	})

	t.Run("entry missing url", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`[{"version":"1.2.3"}]`))
		}))
		defer srv.Close()

		_, err := NewClient(srv.URL).Fetch(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "malformed")
	})

	t.Run("unreachable server", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close()

		_, err := NewClient(srv.URL).Fetch(context.Background())
		assert.Error(t, err)
	})
}
