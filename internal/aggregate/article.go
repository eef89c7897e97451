package aggregate

import (
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/dongbanlab/newswatch/internal/domain"
	"github.com/dongbanlab/newswatch/pkg/feeds"
)

const (
	// publishedLayout matches the timestamp format the feed source emits.
	publishedLayout = "Mon, 02 Jan 2006 15:04:05 MST"
	// publishedDateFormat is the normalized published_date rendering.
	publishedDateFormat = "2006-01-02 15:04:05"
)

// buildArticle maps one raw entry into an Article under the keyword
// that produced it. Missing fields stay empty strings.
func buildArticle(e feeds.Entry, keyword string, crawledAt time.Time) domain.Article {
	return domain.Article{
		Title:         e.Title,
		Link:          e.Link,
		Published:     e.Published,
		PublishedDate: formatPublished(e),
		Summary:       stripHTML(e.Summary),
		Source:        e.Source,
		MediaURL:      e.MediaURL,
		Keyword:       keyword,
		CrawledAt:     crawledAt,
		NormalizedURL: NormalizeURL(e.Link),
	}
}

// formatPublished renders the normalized published_date, falling back
// to the raw string verbatim when the timestamp cannot be parsed.
func formatPublished(e feeds.Entry) string {
	if e.PublishedAt != nil {
		return e.PublishedAt.Format(publishedDateFormat)
	}
	if e.Published == "" {
		return ""
	}
	if t, err := time.Parse(publishedLayout, e.Published); err == nil {
		return t.Format(publishedDateFormat)
	}
	return e.Published
}

// stripHTML reduces a feed summary to its text content. Feed summaries
// arrive as HTML fragments with anchors and entities.
func stripHTML(s string) string {
	if s == "" || !strings.ContainsAny(s, "<&") {
		return s
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}
	return strings.TrimSpace(doc.Text())
}
