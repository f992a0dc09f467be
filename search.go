package sitechat

import "context"

// SearchQuery is a site-restricted query produced by the Planner.
type SearchQuery struct {
	// Text is the full query string, including the site: restriction.
	Text string

	// Facet labels the topic that produced a supplementary query.
	// Empty for the primary query.
	Facet string
}

// SearchResult is a candidate page returned by a search backend.
// Results are untrusted: the URL has not been validated as fetchable.
type SearchResult struct {
	URL     string
	Title   string
	Snippet string

	// Rank is the zero-based position assigned by the search backend.
	Rank int
}

// Searcher finds candidate pages for a query. Implementations scrape or
// call an external search engine; zero results is a valid return, not an
// error.
type Searcher interface {
	Search(ctx context.Context, query string, maxResults int) ([]SearchResult, error)
}

// SitemapService discovers URLs from website sitemaps. It backs the
// fallback search source used when the primary searcher comes up empty.
type SitemapService interface {
	// DiscoverURLs finds all URLs from a site's sitemap.
	// It first checks robots.txt for sitemap directives, then falls back
	// to /sitemap.xml. Sitemap indexes are resolved recursively.
	DiscoverURLs(ctx context.Context, baseURL string) ([]string, error)
}
