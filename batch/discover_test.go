package batch_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fwojciec/repometa"
	"github.com/fwojciec/repometa/batch"
	"github.com/fwojciec/repometa/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscoverer_FromListings(t *testing.T) {
	t.Parallel()

	t.Run("merges item links across listings", func(t *testing.T) {
		t.Parallel()

		d := &batch.Discoverer{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, url string) (string, error) {
					return url, nil
				},
			},
			Links: func(body, _ string, _ *repometa.URLFilter) ([]string, error) {
				if body == "https://repo.ufx.br/browse?page=1" {
					return []string{"https://repo.ufx.br/handle/1/1", "https://repo.ufx.br/handle/1/2"}, nil
				}
				return []string{"https://repo.ufx.br/handle/1/2", "https://repo.ufx.br/handle/1/3"}, nil
			},
			RetryDelays: []time.Duration{},
		}

		urls, err := d.FromListings(context.Background(), []string{
			"https://repo.ufx.br/browse?page=1",
			"https://repo.ufx.br/browse?page=2",
		}, nil)

		require.NoError(t, err)
		assert.Equal(t, []string{
			"https://repo.ufx.br/handle/1/1",
			"https://repo.ufx.br/handle/1/2",
			"https://repo.ufx.br/handle/1/3",
		}, urls)
	})

	t.Run("fails when a listing cannot be fetched", func(t *testing.T) {
		t.Parallel()

		d := &batch.Discoverer{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, _ string) (string, error) {
					return "", errors.New("HTTP 404")
				},
			},
			RetryDelays: []time.Duration{},
		}

		_, err := d.FromListings(context.Background(), []string{"https://repo.ufx.br/browse"}, nil)

		require.ErrorContains(t, err, "HTTP 404")
	})
}

func TestDiscoverer_FromSitemap(t *testing.T) {
	t.Parallel()

	d := &batch.Discoverer{
		Sitemaps: &mock.SitemapService{
			DiscoverURLsFn: func(_ context.Context, baseURL string, _ *repometa.URLFilter) ([]string, error) {
				return []string{baseURL + "/handle/1/1"}, nil
			},
		},
	}

	urls, err := d.FromSitemap(context.Background(), "https://repo.ufx.br", nil)

	require.NoError(t, err)
	assert.Equal(t, []string{"https://repo.ufx.br/handle/1/1"}, urls)
}
