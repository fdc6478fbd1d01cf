package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fwojciec/repometa"
	repohttp "github.com/fwojciec/repometa/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ repometa.Fetcher = (*repohttp.Fetcher)(nil)

// itemServer serves one item page with the given status and content type.
func itemServer(t *testing.T, status int, contentType string, body []byte) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if contentType != "" {
			w.Header().Set("Content-Type", contentType)
		}
		w.WriteHeader(status)
		_, _ = w.Write(body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("returns the item page", func(t *testing.T) {
		t.Parallel()

		page := `<html><head><meta name="citation_title" content="Tese"></head><body></body></html>`
		srv := itemServer(t, http.StatusOK, "text/html; charset=utf-8", []byte(page))

		body, err := repohttp.NewFetcher(repohttp.WithDelay(0)).Fetch(context.Background(), srv.URL+"/handle/1/1")

		require.NoError(t, err)
		assert.Equal(t, page, body)
	})

	t.Run("decodes latin-1 pages to UTF-8", func(t *testing.T) {
		t.Parallel()

		// "Programa de Pós-Graduação" in ISO-8859-1.
		latin1 := []byte("<html><body>Programa de P\xf3s-Gradua\xe7\xe3o</body></html>")
		srv := itemServer(t, http.StatusOK, "text/html; charset=ISO-8859-1", latin1)

		body, err := repohttp.NewFetcher(repohttp.WithDelay(0)).Fetch(context.Background(), srv.URL)

		require.NoError(t, err)
		assert.Contains(t, body, "Programa de Pós-Graduação")
	})

	t.Run("withdrawn items are not found", func(t *testing.T) {
		t.Parallel()

		for _, status := range []int{http.StatusNotFound, http.StatusGone} {
			srv := itemServer(t, status, "text/html", nil)

			_, err := repohttp.NewFetcher(repohttp.WithDelay(0)).Fetch(context.Background(), srv.URL)

			assert.Equal(t, repometa.ENOTFOUND, repometa.ErrorCode(err))
			assert.Contains(t, repometa.ErrorMessage(err), "HTTP")
		}
	})

	t.Run("server errors are internal", func(t *testing.T) {
		t.Parallel()

		srv := itemServer(t, http.StatusServiceUnavailable, "text/html", nil)

		_, err := repohttp.NewFetcher(repohttp.WithDelay(0)).Fetch(context.Background(), srv.URL)

		require.Error(t, err)
		assert.Equal(t, repometa.EINTERNAL, repometa.ErrorCode(err))
		assert.Contains(t, err.Error(), "HTTP 503")
	})

	t.Run("rejects URLs without a host", func(t *testing.T) {
		t.Parallel()

		_, err := repohttp.NewFetcher(repohttp.WithDelay(0)).Fetch(context.Background(), "handle/1/1")

		assert.Equal(t, repometa.EINVALID, repometa.ErrorCode(err))
	})

	t.Run("times out slow repositories", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			time.Sleep(100 * time.Millisecond)
			_, _ = w.Write([]byte("late"))
		}))
		defer srv.Close()

		fetcher := repohttp.NewFetcher(repohttp.WithDelay(0), repohttp.WithTimeout(10*time.Millisecond))
		_, err := fetcher.Fetch(context.Background(), srv.URL)

		require.Error(t, err)
	})

	t.Run("honors canceled context", func(t *testing.T) {
		t.Parallel()

		srv := itemServer(t, http.StatusOK, "text/html", []byte("ok"))
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := repohttp.NewFetcher(repohttp.WithDelay(0)).Fetch(ctx, srv.URL)

		require.ErrorIs(t, err, context.Canceled)
	})

	t.Run("identifies itself", func(t *testing.T) {
		t.Parallel()

		var ua atomic.Value
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ua.Store(r.Header.Get("User-Agent"))
			_, _ = w.Write([]byte("ok"))
		}))
		defer srv.Close()

		_, err := repohttp.NewFetcher(repohttp.WithDelay(0)).Fetch(context.Background(), srv.URL)
		require.NoError(t, err)
		assert.Equal(t, repohttp.DefaultUserAgent, ua.Load())

		_, err = repohttp.NewFetcher(repohttp.WithDelay(0), repohttp.WithUserAgent("thesis-bot/2")).Fetch(context.Background(), srv.URL)
		require.NoError(t, err)
		assert.Equal(t, "thesis-bot/2", ua.Load())
	})

	t.Run("spaces requests to one host", func(t *testing.T) {
		t.Parallel()

		srv := itemServer(t, http.StatusOK, "text/html", []byte("ok"))
		fetcher := repohttp.NewFetcher(repohttp.WithDelay(50 * time.Millisecond))

		start := time.Now()
		for range 3 {
			_, err := fetcher.Fetch(context.Background(), srv.URL)
			require.NoError(t, err)
		}
		assert.GreaterOrEqual(t, time.Since(start), 90*time.Millisecond)
	})
}
