package domain

import "time"

// Domain contains the core models shared by the aggregation pipeline,
// the view engine and the exporters.

// Article is a single collected news item. Text fields the feed source
// omits are empty strings, never absent.
type Article struct {
	Title         string    `json:"title"`
	Link          string    `json:"link"`
	Published     string    `json:"published"`
	PublishedDate string    `json:"published_date"`
	Summary       string    `json:"summary"`
	Source        string    `json:"source"`
	MediaURL      string    `json:"media_url"`
	Keyword       string    `json:"keyword"`
	CrawledAt     time.Time `json:"crawled_at"`
	NormalizedURL string    `json:"normalized_url"`
}

// FetchNotice records a recovered per-keyword fetch failure. The run
// continues; the notice is surfaced to the caller for display.
type FetchNotice struct {
	Keyword string `json:"keyword"`
	Reason  string `json:"reason"`
}

// KeywordCount reports how many articles a single keyword contributed
// before and after dedup/filtering.
type KeywordCount struct {
	Keyword  string `json:"keyword"`
	Fetched  int    `json:"fetched"`
	Accepted int    `json:"accepted"`
}

// Collection is the immutable result of one aggregation run. Consumers
// must not mutate Articles; the view engine operates on copies.
type Collection struct {
	Articles  []Article      `json:"articles"`
	Keywords  []string       `json:"keywords"`
	Counts    []KeywordCount `json:"counts"`
	Notices   []FetchNotice  `json:"notices"`
	StartedAt time.Time      `json:"started_at"`
	EndedAt   time.Time      `json:"ended_at"`
}

// WithArticles returns a shallow copy of the collection carrying the
// given article slice. The receiver is left untouched, so derived
// collections (enriched, filtered) never mutate the original run.
func (c *Collection) WithArticles(articles []Article) *Collection {
	if c == nil {
		return &Collection{Articles: articles}
	}
	out := *c
	out.Articles = articles
	return &out
}

// Empty reports whether the run produced no surviving articles.
func (c *Collection) Empty() bool {
	return c == nil || len(c.Articles) == 0
}

// Len returns the number of surviving articles.
func (c *Collection) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Articles)
}
