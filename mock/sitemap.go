package mock

import (
	"context"

	"github.com/fwojciec/repometa"
)

var _ repometa.SitemapService = (*SitemapService)(nil)

// SitemapService is a mock implementation of repometa.SitemapService.
type SitemapService struct {
	DiscoverURLsFn func(ctx context.Context, baseURL string, filter *repometa.URLFilter) ([]string, error)
}

func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *repometa.URLFilter) ([]string, error) {
	return s.DiscoverURLsFn(ctx, baseURL, filter)
}
