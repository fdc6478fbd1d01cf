package mock

import (
	"context"

	"github.com/fwojciec/repometa"
)

var _ repometa.PageService = (*PageService)(nil)

// PageService is a mock implementation of repometa.PageService.
type PageService struct {
	SavePageFn      func(ctx context.Context, page *repometa.RawPage) error
	FindPageByIDFn  func(ctx context.Context, id string) (*repometa.RawPage, error)
	FindPageByURLFn func(ctx context.Context, url string) (*repometa.RawPage, error)
	FindPagesFn     func(ctx context.Context, filter repometa.PageFilter) ([]*repometa.RawPage, error)
}

func (s *PageService) SavePage(ctx context.Context, page *repometa.RawPage) error {
	return s.SavePageFn(ctx, page)
}

func (s *PageService) FindPageByID(ctx context.Context, id string) (*repometa.RawPage, error) {
	return s.FindPageByIDFn(ctx, id)
}

func (s *PageService) FindPageByURL(ctx context.Context, url string) (*repometa.RawPage, error) {
	return s.FindPageByURLFn(ctx, url)
}

func (s *PageService) FindPages(ctx context.Context, filter repometa.PageFilter) ([]*repometa.RawPage, error) {
	return s.FindPagesFn(ctx, filter)
}
