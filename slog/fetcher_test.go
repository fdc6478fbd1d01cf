package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/repometa/mock"
	reposlog "github.com/fwojciec/repometa/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingFetcher_Fetch(t *testing.T) {
	t.Parallel()

	debugLogger := func(buf *bytes.Buffer) *slog.Logger {
		return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	t.Run("logs successful fetch at debug", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.Fetcher{
			FetchFn: func(context.Context, string) (string, error) {
				return "<html>item</html>", nil
			},
		}

		fetcher := reposlog.NewLoggingFetcher(inner, debugLogger(&buf))
		body, err := fetcher.Fetch(context.Background(), "https://repositorio.ufx.br/handle/1/42")

		require.NoError(t, err)
		assert.Equal(t, "<html>item</html>", body)
		output := buf.String()
		assert.Contains(t, output, "level=DEBUG")
		assert.Contains(t, output, "host=repositorio.ufx.br")
		assert.Contains(t, output, "bytes=17")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs failure at info with error", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.Fetcher{
			FetchFn: func(context.Context, string) (string, error) {
				return "", errors.New("HTTP 503")
			},
		}

		fetcher := reposlog.NewLoggingFetcher(inner, debugLogger(&buf))
		_, err := fetcher.Fetch(context.Background(), "https://repositorio.ufx.br/handle/1/42")

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "level=INFO")
		assert.Contains(t, output, "fetch failed")
		assert.Contains(t, output, `err="HTTP 503"`)
	})

	t.Run("successes are hidden at the default CLI level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn}))
		inner := &mock.Fetcher{
			FetchFn: func(context.Context, string) (string, error) { return "<html></html>", nil },
		}

		_, err := reposlog.NewLoggingFetcher(inner, logger).Fetch(context.Background(), "https://repositorio.ufx.br/handle/1/1")

		require.NoError(t, err)
		assert.Empty(t, buf.String())
	})
}

func TestLoggingFetcher_Close(t *testing.T) {
	t.Parallel()

	closed := false
	inner := &mock.Fetcher{
		CloseFn: func() error {
			closed = true
			return nil
		},
	}

	err := reposlog.NewLoggingFetcher(inner, slog.New(slog.DiscardHandler)).Close()

	require.NoError(t, err)
	assert.True(t, closed)
}
