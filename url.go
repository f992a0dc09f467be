package sitechat

import (
	"net/url"
	"strings"
)

// NormalizeURL canonicalizes a URL for deduplication: lowercased scheme
// and host, default port and fragment stripped, trailing slash trimmed.
// Two results differing only in these details dedupe to one key.
func NormalizeURL(raw string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", Errorf(EMALFORMED, "invalid URL %q: %v", raw, err)
	}
	if !u.IsAbs() || u.Host == "" {
		return "", Errorf(EMALFORMED, "URL %q is not absolute", raw)
	}

	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)

	switch {
	case u.Scheme == "http" && strings.HasSuffix(u.Host, ":80"):
		u.Host = strings.TrimSuffix(u.Host, ":80")
	case u.Scheme == "https" && strings.HasSuffix(u.Host, ":443"):
		u.Host = strings.TrimSuffix(u.Host, ":443")
	}

	u.Fragment = ""
	u.RawFragment = ""
	u.Path = strings.TrimSuffix(u.Path, "/")

	return u.String(), nil
}

// Domain returns the lowercased host of a URL without any port, used as
// the politeness rate-limit key. Returns "" for unparseable URLs.
func Domain(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Hostname())
}

// OnDomain reports whether a URL belongs to the target domain or one of
// its subdomains.
func OnDomain(rawURL, domain string) bool {
	host := Domain(rawURL)
	if host == "" || domain == "" {
		return false
	}
	domain = strings.ToLower(domain)
	return host == domain || strings.HasSuffix(host, "."+domain)
}
