package mock

import (
	"context"

	"github.com/duna-akin/sitechat"
)

var _ sitechat.Searcher = (*Searcher)(nil)

// Searcher is a mock implementation of sitechat.Searcher.
type Searcher struct {
	SearchFn func(ctx context.Context, query string, maxResults int) ([]sitechat.SearchResult, error)
}

func (s *Searcher) Search(ctx context.Context, query string, maxResults int) ([]sitechat.SearchResult, error) {
	return s.SearchFn(ctx, query, maxResults)
}

var _ sitechat.SitemapService = (*SitemapService)(nil)

// SitemapService is a mock implementation of sitechat.SitemapService.
type SitemapService struct {
	DiscoverURLsFn func(ctx context.Context, baseURL string) ([]string, error)
}

func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string) ([]string, error) {
	return s.DiscoverURLsFn(ctx, baseURL)
}
