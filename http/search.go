package http

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/duna-akin/sitechat"
)

// DefaultSearchEndpoint is the DuckDuckGo HTML endpoint. It serves static
// markup and needs no API key.
const DefaultSearchEndpoint = "https://html.duckduckgo.com/html/"

// Ensure Searcher implements sitechat.Searcher at compile time.
var _ sitechat.Searcher = (*Searcher)(nil)

// Searcher implements sitechat.Searcher by scraping a search engine's
// HTML results page. Only results on the target domain are returned; the
// site: restriction in the query is a hint the engine may ignore.
type Searcher struct {
	client   *http.Client
	endpoint string
	domain   string
}

// SearcherOption configures a Searcher.
type SearcherOption func(*Searcher)

// WithSearchClient sets the HTTP client. Defaults to http.DefaultClient.
func WithSearchClient(client *http.Client) SearcherOption {
	return func(s *Searcher) {
		s.client = client
	}
}

// WithSearchEndpoint overrides the results-page URL, used by tests.
func WithSearchEndpoint(endpoint string) SearcherOption {
	return func(s *Searcher) {
		s.endpoint = endpoint
	}
}

// NewSearcher creates a Searcher restricted to the given domain.
func NewSearcher(domain string, opts ...SearcherOption) *Searcher {
	s := &Searcher{
		client:   http.DefaultClient,
		endpoint: DefaultSearchEndpoint,
		domain:   domain,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Search runs one query and returns up to maxResults on-domain results.
// Zero results is a valid return and is not an error.
func (s *Searcher) Search(ctx context.Context, query string, maxResults int) ([]sitechat.SearchResult, error) {
	reqURL := s.endpoint + "?q=" + url.QueryEscape(query)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, sitechat.Errorf(sitechat.EINVALID, "invalid search request: %v", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, sitechat.Errorf(sitechat.EUNAVAILABLE, "search request failed: %v", err)
	}
	defer resp.Body.Close()

	if code := statusError(resp.StatusCode); code != "" {
		return nil, sitechat.Errorf(code, "search returned HTTP %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, sitechat.Errorf(sitechat.EMALFORMED, "parsing search results: %v", err)
	}

	var results []sitechat.SearchResult
	doc.Find(".result").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		link := sel.Find("a.result__a").First()
		href, ok := link.Attr("href")
		if !ok {
			return true
		}

		target := resolveRedirect(href)
		if !sitechat.OnDomain(target, s.domain) {
			return true
		}

		results = append(results, sitechat.SearchResult{
			URL:     target,
			Title:   strings.TrimSpace(link.Text()),
			Snippet: strings.TrimSpace(sel.Find(".result__snippet").Text()),
			Rank:    len(results),
		})
		return maxResults <= 0 || len(results) < maxResults
	})

	return results, nil
}

// resolveRedirect unwraps DuckDuckGo's /l/?uddg=... redirect links and
// normalizes protocol-relative URLs.
func resolveRedirect(href string) string {
	if strings.HasPrefix(href, "//") {
		href = "https:" + href
	}

	u, err := url.Parse(href)
	if err != nil {
		return href
	}
	if target := u.Query().Get("uddg"); target != "" {
		return target
	}
	return href
}
