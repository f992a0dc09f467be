package http

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"github.com/beevik/etree"
	"github.com/duna-akin/sitechat"
)

// Ensure SitemapService implements sitechat.SitemapService.
var _ sitechat.SitemapService = (*SitemapService)(nil)

// SitemapService discovers URLs from website sitemaps via HTTP.
type SitemapService struct {
	client *http.Client
}

// NewSitemapService creates a new SitemapService with the given HTTP client.
// If client is nil, http.DefaultClient is used.
func NewSitemapService(client *http.Client) *SitemapService {
	if client == nil {
		client = http.DefaultClient
	}
	return &SitemapService{client: client}
}

// DiscoverURLs finds all URLs from a site's sitemap.
// Returns an empty slice (not nil) if no sitemaps are found.
func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, sitechat.Errorf(sitechat.EMALFORMED, "invalid base URL: %v", err)
	}

	sitemapURLs, err := s.findSitemapURLs(ctx, base)
	if err != nil {
		return nil, err
	}
	if len(sitemapURLs) == 0 {
		return []string{}, nil
	}

	var allURLs []string
	seenSitemaps := make(map[string]bool)
	seenURLs := make(map[string]bool)

	for _, sitemapURL := range sitemapURLs {
		urls, err := s.processSitemap(ctx, sitemapURL, seenSitemaps)
		if err != nil {
			return nil, err
		}
		for _, u := range urls {
			if !seenURLs[u] {
				seenURLs[u] = true
				allURLs = append(allURLs, u)
			}
		}
	}

	return allURLs, nil
}

// findSitemapURLs discovers sitemap URLs from robots.txt or falls back to
// /sitemap.xml.
func (s *SitemapService) findSitemapURLs(ctx context.Context, base *url.URL) ([]string, error) {
	robotsURL := base.ResolveReference(&url.URL{Path: "/robots.txt"})
	sitemaps, err := s.parseSitemapsFromRobots(ctx, robotsURL.String())
	if err == nil && len(sitemaps) > 0 {
		return sitemaps, nil
	}

	sitemapURL := base.ResolveReference(&url.URL{Path: "/sitemap.xml"})
	body, err := s.fetchURL(ctx, sitemapURL.String())
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, nil
	}
	body.Close()
	return []string{sitemapURL.String()}, nil
}

// parseSitemapsFromRobots extracts Sitemap: directives from robots.txt.
func (s *SitemapService) parseSitemapsFromRobots(ctx context.Context, robotsURL string) ([]string, error) {
	body, err := s.fetchURL(ctx, robotsURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	var sitemaps []string
	scanner := bufio.NewScanner(body)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		// Case-insensitive check for Sitemap: directive
		if strings.HasPrefix(strings.ToLower(line), "sitemap:") {
			sitemapURL := strings.TrimSpace(line[8:]) // len("sitemap:") == 8
			if sitemapURL != "" {
				sitemaps = append(sitemaps, sitemapURL)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading robots.txt: %w", err)
	}

	return sitemaps, nil
}

// processSitemap fetches and parses a sitemap, handling both urlset and
// sitemapindex documents. Index entries are resolved recursively.
func (s *SitemapService) processSitemap(ctx context.Context, sitemapURL string, seen map[string]bool) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if seen[sitemapURL] {
		return nil, nil
	}
	seen[sitemapURL] = true

	body, err := s.fetchURL(ctx, sitemapURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(body); err != nil {
		return nil, sitechat.Errorf(sitechat.EMALFORMED, "parsing sitemap XML: %v", err)
	}

	root := doc.Root()
	if root == nil {
		return nil, nil
	}

	switch root.Tag {
	case "sitemapindex":
		var urls []string
		for _, sm := range root.SelectElements("sitemap") {
			loc := sm.SelectElement("loc")
			if loc == nil {
				continue
			}
			nested, err := s.processSitemap(ctx, strings.TrimSpace(loc.Text()), seen)
			if err != nil {
				return nil, err
			}
			urls = append(urls, nested...)
		}
		return urls, nil

	case "urlset":
		var urls []string
		for _, u := range root.SelectElements("url") {
			loc := u.SelectElement("loc")
			if loc == nil {
				continue
			}
			if text := strings.TrimSpace(loc.Text()); text != "" {
				urls = append(urls, text)
			}
		}
		return urls, nil
	}

	return nil, nil
}

// fetchURL performs a GET and returns the body for 200 responses.
func (s *SitemapService) fetchURL(ctx context.Context, rawURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, sitechat.Errorf(statusError(resp.StatusCode), "HTTP %d for %s", resp.StatusCode, rawURL)
	}
	return resp.Body, nil
}

// Ensure SitemapSearcher implements sitechat.Searcher.
var _ sitechat.Searcher = (*SitemapSearcher)(nil)

// SitemapSearcher is a fallback search source: when the web search engine
// returns nothing, candidate pages come from the site's own sitemap,
// ranked by query-term overlap with the URL path. With no term matches it
// falls back to the site's shallowest pages, mirroring a "start at the
// landing pages" strategy.
type SitemapSearcher struct {
	Sitemaps sitechat.SitemapService
	Domain   string
}

// Search ranks sitemap URLs against the query and returns the top
// maxResults.
func (s *SitemapSearcher) Search(ctx context.Context, query string, maxResults int) ([]sitechat.SearchResult, error) {
	urls, err := s.Sitemaps.DiscoverURLs(ctx, "https://"+s.Domain+"/")
	if err != nil {
		return nil, err
	}
	if len(urls) == 0 {
		return nil, nil
	}

	terms := queryTerms(query)

	type scored struct {
		url   string
		score int
		depth int
	}
	candidates := make([]scored, 0, len(urls))
	for _, u := range urls {
		if !sitechat.OnDomain(u, s.Domain) {
			continue
		}
		candidates = append(candidates, scored{
			url:   u,
			score: pathOverlap(u, terms),
			depth: strings.Count(strings.TrimSuffix(u, "/"), "/"),
		})
	}

	// Prefer term matches, then shallow pages, then stable lexicographic
	// order so results are deterministic.
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		if candidates[i].depth != candidates[j].depth {
			return candidates[i].depth < candidates[j].depth
		}
		return candidates[i].url < candidates[j].url
	})

	if maxResults <= 0 {
		maxResults = 3
	}
	var results []sitechat.SearchResult
	for _, c := range candidates {
		if len(results) >= maxResults {
			break
		}
		results = append(results, sitechat.SearchResult{
			URL:   c.url,
			Title: pathTitle(c.url),
			Rank:  len(results),
		})
	}
	return results, nil
}

// queryTerms strips the site: restriction and returns the query's key terms.
func queryTerms(query string) []string {
	fields := strings.Fields(query)
	kept := fields[:0]
	for _, f := range fields {
		if strings.HasPrefix(strings.ToLower(f), "site:") {
			continue
		}
		kept = append(kept, f)
	}
	return sitechat.KeyTerms(strings.Join(kept, " "))
}

// pathOverlap counts the distinct query terms present in the URL path.
func pathOverlap(rawURL string, terms []string) int {
	u, err := url.Parse(rawURL)
	if err != nil {
		return 0
	}
	path := strings.ToLower(u.Path)
	n := 0
	for _, t := range terms {
		if strings.Contains(path, t) {
			n++
		}
	}
	return n
}

// pathTitle derives a readable title from the last URL path segment.
func pathTitle(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	last := segments[len(segments)-1]
	if last == "" {
		return u.Hostname()
	}
	return strings.ReplaceAll(last, "-", " ")
}
