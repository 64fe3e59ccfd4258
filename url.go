package folio

import (
	"net/url"
	"strings"
)

// ResolveURL makes ref absolute against the page URL base.
//
// References carrying a scheme are returned unchanged, protocol-relative
// references get "https:", and everything else is joined to the base
// scheme and host. The base path is ignored: "img.png" on
// https://a.com/work/ resolves to https://a.com/img.png, matching the
// root-relative asset layout of the sites this targets.
func ResolveURL(base, ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}
	if hasScheme(ref) {
		return ref
	}
	if strings.HasPrefix(ref, "//") {
		return "https:" + ref
	}

	origin := originOf(base)
	if strings.HasPrefix(ref, "/") {
		return origin + ref
	}
	return origin + "/" + ref
}

// ValidateURL returns EINVALID unless raw is an absolute http(s) URL.
func ValidateURL(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return Errorf(EINVALID, "url required")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return Errorf(EINVALID, "invalid url %q: %v", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return Errorf(EINVALID, "url %q must use http or https", raw)
	}
	if u.Host == "" {
		return Errorf(EINVALID, "url %q has no host", raw)
	}
	return nil
}

// Hostname returns the lower-cased host of raw without port, or "" when
// raw cannot be parsed.
func Hostname(raw string) string {
	if !hasScheme(raw) {
		raw = "https://" + strings.TrimPrefix(raw, "//")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Hostname())
}

// originOf returns scheme://host for base, defaulting the scheme to https.
func originOf(base string) string {
	u, err := url.Parse(strings.TrimSpace(base))
	if err != nil || u.Host == "" {
		host := strings.TrimPrefix(strings.TrimSpace(base), "//")
		if i := strings.IndexByte(host, '/'); i >= 0 {
			host = host[:i]
		}
		return "https://" + host
	}
	scheme := u.Scheme
	if scheme == "" {
		scheme = "https"
	}
	return scheme + "://" + u.Host
}

// hasScheme reports whether s starts with an RFC 3986 scheme followed by ':'.
func hasScheme(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z':
		case '0' <= c && c <= '9' || c == '+' || c == '-' || c == '.':
			if i == 0 {
				return false
			}
		case c == ':':
			return i > 0
		default:
			return false
		}
	}
	return false
}
