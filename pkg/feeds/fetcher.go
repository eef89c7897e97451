package feeds

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/mmcdole/gofeed/rss"

	"github.com/dongbanlab/newswatch/internal/logger"
	"github.com/dongbanlab/newswatch/pkg/httpclient"
)

const defaultFetchTimeout = 15 * time.Second

// Entry is one raw feed record. Every field is optional at the source;
// absent fields are empty strings, never errors.
type Entry struct {
	Title       string
	Link        string
	Published   string
	PublishedAt *time.Time
	Summary     string
	Source      string
	MediaURL    string
}

// Fetcher turns a feed query into raw entries. Implementations return
// recoverable errors; callers decide whether to continue.
type Fetcher interface {
	Fetch(ctx context.Context, q Query) ([]Entry, error)
}

// feedFetcher fetches the feed over HTTP and parses it as RSS.
type feedFetcher struct {
	client httpclient.Client
	parser *rss.Parser
	log    logger.Logger
}

// NewFetcher builds the production feed fetcher.
func NewFetcher(client httpclient.Client, log logger.Logger) Fetcher {
	if client == nil {
		client = httpclient.NewRestyClient(defaultFetchTimeout)
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	return &feedFetcher{
		client: client,
		parser: &rss.Parser{},
		log:    log,
	}
}

// Fetch performs one GET against the feed endpoint and maps the parsed
// items into entries.
func (f *feedFetcher) Fetch(ctx context.Context, q Query) ([]Entry, error) {
	reqURL := q.URL()

	resp, err := f.client.Get(ctx, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch feed for %q: %w", q.Keyword, err)
	}

	body := resp.Body()
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("feed for %q returned status %d body: %s",
			q.Keyword, resp.StatusCode(), responseSnippet(body))
	}

	feed, err := f.parser.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse feed for %q: %w", q.Keyword, err)
	}

	entries := make([]Entry, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item == nil {
			continue
		}
		entries = append(entries, mapItem(item))
	}

	f.log.DebugObj("feed fetched", "feed_fetch", map[string]any{
		"keyword": q.Keyword,
		"entries": len(entries),
	})
	return entries, nil
}

// mapItem converts a parsed RSS item into an Entry, tolerating every
// missing field.
func mapItem(item *rss.Item) Entry {
	e := Entry{
		Title:       strings.TrimSpace(item.Title),
		Link:        strings.TrimSpace(item.Link),
		Published:   strings.TrimSpace(item.PubDate),
		PublishedAt: item.PubDateParsed,
		Summary:     strings.TrimSpace(item.Description),
	}
	if item.Source != nil {
		e.Source = strings.TrimSpace(item.Source.Title)
	}
	e.MediaURL = firstMediaURL(item)
	return e
}

// firstMediaURL picks the first media content URL carried by the item,
// if any.
func firstMediaURL(item *rss.Item) string {
	media, ok := item.Extensions["media"]
	if !ok {
		return ""
	}
	for _, name := range []string{"content", "thumbnail"} {
		for _, ext := range media[name] {
			if u := strings.TrimSpace(ext.Attrs["url"]); u != "" {
				return u
			}
		}
	}
	return ""
}

func responseSnippet(body []byte) string {
	const maxLen = 512
	s := strings.TrimSpace(string(body))
	if s == "" {
		return "<empty>"
	}
	if len(s) > maxLen {
		return s[:maxLen] + "..."
	}
	return s
}
