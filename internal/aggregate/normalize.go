package aggregate

import (
	"net/url"
	"strings"
)

// NormalizeURL canonicalizes an article link into its deduplication
// key: lowercased host plus path, dropping scheme, query string and
// fragment. Tracking-parameter variants of the same article collapse
// into one key.
//
// The function is total and fail-open: input that cannot be reduced to
// host+path comes back verbatim, so a malformed link risks a missed
// duplicate instead of a dropped article.
func NormalizeURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}

	key := strings.ToLower(u.Host) + u.Path
	if key == "" {
		return raw
	}
	return key
}
