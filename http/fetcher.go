// Package http provides HTTP-based implementations of sitechat.Fetcher,
// sitechat.Searcher, and sitechat.SitemapService for working with static
// sites that don't require JavaScript rendering.
package http

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/duna-akin/sitechat"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
// Kept consistent with rod.DefaultFetchTimeout (10s).
const DefaultFetchTimeout = 10 * time.Second

// userAgent is sent on every request. Some sites serve placeholder pages
// to unidentified clients.
const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"

// Ensure Fetcher implements sitechat.Fetcher at compile time.
var _ sitechat.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML content from URLs using HTTP requests.
// Unlike rod.Fetcher, this does not execute JavaScript and is suitable
// for static sites only.
type Fetcher struct {
	client  *http.Client
	timeout time.Duration
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout: DefaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves the HTML content from the given URL. Failures carry an
// application error code so callers can decide whether to retry:
// timeouts, 429s, and server errors are transient; 404s are not.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", sitechat.Errorf(sitechat.EINVALID, "invalid URL %q: %v", url, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		var nerr net.Error
		switch {
		case errors.Is(err, context.DeadlineExceeded):
			return "", sitechat.Errorf(sitechat.ETIMEOUT, "fetching %s: %v", url, err)
		case errors.As(err, &nerr) && nerr.Timeout():
			return "", sitechat.Errorf(sitechat.ETIMEOUT, "fetching %s: %v", url, err)
		}
		return "", sitechat.Errorf(sitechat.EUNAVAILABLE, "fetching %s: %v", url, err)
	}
	defer resp.Body.Close()

	if code := statusError(resp.StatusCode); code != "" {
		return "", sitechat.Errorf(code, "HTTP %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", sitechat.Errorf(sitechat.EUNAVAILABLE, "reading %s: %v", url, err)
	}

	return string(body), nil
}

// Close releases resources. For the HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}

// statusError maps an HTTP status to an application error code,
// or "" for success.
func statusError(status int) string {
	switch {
	case status == http.StatusOK:
		return ""
	case status == http.StatusNotFound, status == http.StatusGone:
		return sitechat.ENOTFOUND
	case status == http.StatusTooManyRequests:
		return sitechat.ERATELIMITED
	case status == http.StatusRequestTimeout:
		return sitechat.ETIMEOUT
	case status >= 500:
		return sitechat.EUNAVAILABLE
	default:
		return sitechat.EINVALID
	}
}
