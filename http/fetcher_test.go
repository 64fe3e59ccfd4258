package http_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/fwojciec/folio"
	foliohttp "github.com/fwojciec/folio/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("returns page with status, body and headers", func(t *testing.T) {
		t.Parallel()

		gotUA := make(chan string, 1)
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotUA <- r.Header.Get("User-Agent")
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte("<html><body>Hello World</body></html>"))
		}))
		defer server.Close()

		fetcher := foliohttp.NewFetcher()
		defer fetcher.Close()

		page, err := fetcher.Fetch(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Equal(t, server.URL, page.URL)
		assert.Equal(t, http.StatusOK, page.StatusCode)
		assert.Equal(t, "<html><body>Hello World</body></html>", string(page.Body))
		assert.Equal(t, []string{"text/html"}, page.Headers["Content-Type"])
		assert.Equal(t, foliohttp.DefaultUserAgent, <-gotUA)
	})

	t.Run("sends custom user agent", func(t *testing.T) {
		t.Parallel()

		gotUA := make(chan string, 1)
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotUA <- r.Header.Get("User-Agent")
		}))
		defer server.Close()

		fetcher := foliohttp.NewFetcher(foliohttp.WithUserAgent("test-agent"))

		_, err := fetcher.Fetch(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Equal(t, "test-agent", <-gotUA)
	})

	t.Run("accepts any 2xx status", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNonAuthoritativeInfo)
			_, _ = w.Write([]byte("ok"))
		}))
		defer server.Close()

		page, err := foliohttp.NewFetcher().Fetch(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Equal(t, http.StatusNonAuthoritativeInfo, page.StatusCode)
	})

	t.Run("non-2xx status is a fetch error", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		_, err := foliohttp.NewFetcher().Fetch(context.Background(), server.URL)

		var fe *folio.FetchError
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, http.StatusNotFound, fe.StatusCode)
		assert.False(t, fe.Temporary())
		assert.Equal(t, folio.EFETCH, folio.ErrorCode(err))
	})

	t.Run("caps the body size", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(strings.Repeat("a", 100)))
		}))
		defer server.Close()

		page, err := foliohttp.NewFetcher(foliohttp.WithMaxBodySize(10)).Fetch(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Len(t, page.Body, 10)
	})

	t.Run("respects custom timeout option", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(100 * time.Millisecond)
			_, _ = w.Write([]byte("response"))
		}))
		defer server.Close()

		fetcher := foliohttp.NewFetcher(foliohttp.WithTimeout(10 * time.Millisecond))

		_, err := fetcher.Fetch(context.Background(), server.URL)

		var fe *folio.FetchError
		require.ErrorAs(t, err, &fe)
		assert.True(t, fe.Temporary())
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(100 * time.Millisecond)
			_, _ = w.Write([]byte("response"))
		}))
		defer server.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := foliohttp.NewFetcher().Fetch(ctx, server.URL)
		require.True(t, errors.Is(err, context.Canceled))
	})

	t.Run("returns fetch error for non-existent host", func(t *testing.T) {
		t.Parallel()

		fetcher := foliohttp.NewFetcher(foliohttp.WithTimeout(100 * time.Millisecond))

		_, err := fetcher.Fetch(context.Background(), "http://non-existent-host.invalid/page")
		assert.Equal(t, folio.EFETCH, folio.ErrorCode(err))
	})

	t.Run("rejects malformed url", func(t *testing.T) {
		t.Parallel()

		_, err := foliohttp.NewFetcher().Fetch(context.Background(), "http://[::1")
		assert.Equal(t, folio.EINVALID, folio.ErrorCode(err))
	})
}
