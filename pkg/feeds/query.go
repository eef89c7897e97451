package feeds

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

const (
	// DefaultEndpoint is the Google News RSS search endpoint.
	DefaultEndpoint = "https://news.google.com/rss/search"

	defaultLanguage = "ko"
	defaultCountry  = "KR"
)

// Locale selects the language and country edition of the feed source.
type Locale struct {
	Language string
	Country  string
}

// DefaultLocale returns the Korean edition used by the default keyword set.
func DefaultLocale() Locale {
	return Locale{Language: defaultLanguage, Country: defaultCountry}
}

// sanitize fills empty codes with the defaults and trims whitespace.
func (l Locale) sanitize() Locale {
	l.Language = strings.TrimSpace(l.Language)
	l.Country = strings.TrimSpace(l.Country)
	if l.Language == "" {
		l.Language = defaultLanguage
	}
	if l.Country == "" {
		l.Country = defaultCountry
	}
	return l
}

// Query describes one feed request. It is a pure value; the fetcher
// turns it into an HTTP GET.
type Query struct {
	Keyword  string
	Endpoint string
	Params   url.Values
}

// BuildQuery produces the feed query for a keyword. The keyword is
// percent-encoded into the q parameter; maxResults is passed through as
// a hint via num, the aggregator enforces the actual cap.
func BuildQuery(keyword string, loc Locale, maxResults int) Query {
	loc = loc.sanitize()
	if maxResults < 1 {
		maxResults = 1
	}

	params := url.Values{}
	params.Set("q", keyword)
	params.Set("hl", loc.Language)
	params.Set("gl", loc.Country)
	params.Set("ceid", fmt.Sprintf("%s:%s", loc.Country, loc.Language))
	params.Set("num", strconv.Itoa(maxResults))

	return Query{
		Keyword:  keyword,
		Endpoint: DefaultEndpoint,
		Params:   params,
	}
}

// URL renders the full request URL with percent-encoded parameters.
func (q Query) URL() string {
	if len(q.Params) == 0 {
		return q.Endpoint
	}
	return q.Endpoint + "?" + q.Params.Encode()
}
