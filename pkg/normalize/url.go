package normalize

import (
	"net/url"
	"strings"
)

// trackingParams are query parameters stripped during URL normalization.
var trackingParams = map[string]bool{
	"ref":         true,
	"source":      true,
	"fbclid":      true,
	"gclid":       true,
	"igshid":      true,
	"mc_cid":      true,
	"mc_eid":      true,
	"ref_src":     true,
	"share_id":    true,
	"spm":         true,
	"_hsenc":      true,
	"_hsmi":       true,
	"hsCtaAttrib": true,
}

// URL canonicalizes a URL: lower-cases the host, strips default ports,
// tracking query parameters, fragments and trailing slashes. Malformed or
// empty input returns "" — the field is treated as unobserved, never as an
// error.
func URL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	// Sources frequently omit the scheme.
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return ""
	}

	switch u.Scheme {
	case "http", "https":
	default:
		return ""
	}

	host := strings.ToLower(u.Host)
	// Only the scheme's own default port is redundant.
	switch u.Scheme {
	case "http":
		host = strings.TrimSuffix(host, ":80")
	case "https":
		host = strings.TrimSuffix(host, ":443")
	}
	if !strings.Contains(host, ".") {
		return ""
	}
	u.Host = host

	u.Fragment = ""

	query := u.Query()
	for param := range query {
		if trackingParams[param] || strings.HasPrefix(param, "utm_") {
			query.Del(param)
		}
	}
	u.RawQuery = query.Encode()

	u.Path = strings.TrimRight(u.Path, "/")

	return u.String()
}

// Domain extracts the registrable host from a URL, without a leading "www.".
// Returns "" for input that does not parse as a URL.
func Domain(raw string) string {
	normalized := URL(raw)
	if normalized == "" {
		return ""
	}
	u, err := url.Parse(normalized)
	if err != nil {
		return ""
	}
	host := strings.ToLower(u.Hostname())
	return strings.TrimPrefix(host, "www.")
}
