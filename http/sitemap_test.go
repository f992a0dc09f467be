package http_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/duna-akin/sitechat"
	sitechathttp "github.com/duna-akin/sitechat/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func urlsetXML(urls ...string) string {
	xml := `<?xml version="1.0" encoding="UTF-8"?><urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">`
	for _, u := range urls {
		xml += "<url><loc>" + u + "</loc></url>"
	}
	return xml + "</urlset>"
}

func TestSitemapService_DiscoverURLs(t *testing.T) {
	t.Parallel()

	t.Run("uses robots.txt sitemap directive", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		srv := httptest.NewServer(mux)
		defer srv.Close()

		mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprintf(w, "User-agent: *\nDisallow: /admin\nSitemap: %s/pages.xml\n", srv.URL)
		})
		mux.HandleFunc("/pages.xml", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, urlsetXML(srv.URL+"/about", srv.URL+"/contact"))
		})

		svc := sitechathttp.NewSitemapService(srv.Client())
		urls, err := svc.DiscoverURLs(context.Background(), srv.URL)
		require.NoError(t, err)
		assert.Equal(t, []string{srv.URL + "/about", srv.URL + "/contact"}, urls)
	})

	t.Run("falls back to /sitemap.xml", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		srv := httptest.NewServer(mux)
		defer srv.Close()

		mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})
		mux.HandleFunc("/sitemap.xml", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, urlsetXML(srv.URL+"/home"))
		})

		svc := sitechathttp.NewSitemapService(srv.Client())
		urls, err := svc.DiscoverURLs(context.Background(), srv.URL)
		require.NoError(t, err)
		assert.Equal(t, []string{srv.URL + "/home"}, urls)
	})

	t.Run("resolves sitemapindex recursively", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		srv := httptest.NewServer(mux)
		defer srv.Close()

		mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprintf(w, "Sitemap: %s/index.xml\n", srv.URL)
		})
		mux.HandleFunc("/index.xml", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprintf(w, `<?xml version="1.0"?><sitemapindex>
				<sitemap><loc>%s/a.xml</loc></sitemap>
				<sitemap><loc>%s/b.xml</loc></sitemap>
			</sitemapindex>`, srv.URL, srv.URL)
		})
		mux.HandleFunc("/a.xml", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, urlsetXML(srv.URL+"/one"))
		})
		mux.HandleFunc("/b.xml", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, urlsetXML(srv.URL+"/two", srv.URL+"/one"))
		})

		svc := sitechathttp.NewSitemapService(srv.Client())
		urls, err := svc.DiscoverURLs(context.Background(), srv.URL)
		require.NoError(t, err)
		// Deduplicated across nested sitemaps.
		assert.Equal(t, []string{srv.URL + "/one", srv.URL + "/two"}, urls)
	})

	t.Run("returns empty slice when no sitemap exists", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer srv.Close()

		svc := sitechathttp.NewSitemapService(srv.Client())
		urls, err := svc.DiscoverURLs(context.Background(), srv.URL)
		require.NoError(t, err)
		assert.Empty(t, urls)
	})

	t.Run("malformed XML returns EMALFORMED", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		srv := httptest.NewServer(mux)
		defer srv.Close()

		mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprintf(w, "Sitemap: %s/broken.xml\n", srv.URL)
		})
		mux.HandleFunc("/broken.xml", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, "<urlset><url><loc>unclosed")
		})

		svc := sitechathttp.NewSitemapService(srv.Client())
		_, err := svc.DiscoverURLs(context.Background(), srv.URL)
		require.Error(t, err)
		assert.Equal(t, sitechat.EMALFORMED, sitechat.ErrorCode(err))
	})
}

// staticSitemaps is a canned sitechat.SitemapService for searcher tests.
type staticSitemaps struct {
	urls []string
}

func (s *staticSitemaps) DiscoverURLs(ctx context.Context, baseURL string) ([]string, error) {
	return s.urls, nil
}

func TestSitemapSearcher_Search(t *testing.T) {
	t.Parallel()

	t.Run("ranks by query-term overlap with path", func(t *testing.T) {
		t.Parallel()

		s := &sitechathttp.SitemapSearcher{
			Sitemaps: &staticSitemaps{urls: []string{
				"https://example.edu/",
				"https://example.edu/campus-life/housing",
				"https://example.edu/admission/tuition-and-aid",
				"https://example.edu/admission/tuition",
			}},
			Domain: "example.edu",
		}

		results, err := s.Search(context.Background(), "site:example.edu tuition aid", 2)
		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.Equal(t, "https://example.edu/admission/tuition-and-aid", results[0].URL)
		assert.Equal(t, "https://example.edu/admission/tuition", results[1].URL)
		assert.Equal(t, 0, results[0].Rank)
	})

	t.Run("falls back to shallowest pages when nothing matches", func(t *testing.T) {
		t.Parallel()

		s := &sitechathttp.SitemapSearcher{
			Sitemaps: &staticSitemaps{urls: []string{
				"https://example.edu/a/b/c/deep",
				"https://example.edu/about",
				"https://example.edu/a/b/mid",
			}},
			Domain: "example.edu",
		}

		results, err := s.Search(context.Background(), "zzzunmatchable", 2)
		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.Equal(t, "https://example.edu/about", results[0].URL)
		assert.Equal(t, "https://example.edu/a/b/mid", results[1].URL)
	})

	t.Run("skips off-domain sitemap entries", func(t *testing.T) {
		t.Parallel()

		s := &sitechathttp.SitemapSearcher{
			Sitemaps: &staticSitemaps{urls: []string{
				"https://cdn.other.com/asset",
				"https://example.edu/visit",
			}},
			Domain: "example.edu",
		}

		results, err := s.Search(context.Background(), "visit", 10)
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "https://example.edu/visit", results[0].URL)
	})

	t.Run("empty sitemap yields no results", func(t *testing.T) {
		t.Parallel()

		s := &sitechathttp.SitemapSearcher{
			Sitemaps: &staticSitemaps{},
			Domain:   "example.edu",
		}

		results, err := s.Search(context.Background(), "anything", 10)
		require.NoError(t, err)
		assert.Empty(t, results)
	})
}
