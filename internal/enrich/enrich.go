// Package enrich fills gaps in collected articles by scraping page
// metadata. Feed entries often arrive without a summary or media URL;
// the article's own og: tags usually carry both.
package enrich

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/dongbanlab/newswatch/internal/domain"
	"github.com/dongbanlab/newswatch/internal/logger"
	"github.com/dongbanlab/newswatch/pkg/httpclient"
)

const (
	maxHTMLBodyBytes = 1 << 20 // 1 MiB
	maxEnrichWorkers = 10
)

// Enricher scrapes article pages for og: metadata and fills empty
// summary and media fields. Failures leave the article unchanged.
type Enricher struct {
	client httpclient.Client
	log    logger.Logger
}

// NewEnricher creates an Enricher with the given HTTP client and logger.
func NewEnricher(client httpclient.Client, log logger.Logger) *Enricher {
	if client == nil {
		client = httpclient.NewRestyClient(15 * time.Second)
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	return &Enricher{client: client, log: log}
}

// Apply returns a new slice where articles missing a summary or media
// URL are completed from their page metadata. delay paces requests; on
// cancellation the articles processed so far keep their enrichment and
// the rest come back as-is.
func (e *Enricher) Apply(ctx context.Context, delay time.Duration, articles []domain.Article) []domain.Article {
	out := make([]domain.Article, len(articles))
	copy(out, articles)

	if len(articles) == 0 {
		return out
	}

	workerCount := len(articles)
	if workerCount > maxEnrichWorkers {
		workerCount = maxEnrichWorkers
	}

	var limiter <-chan time.Time
	if delay > 0 {
		ticker := time.NewTicker(delay)
		limiter = ticker.C
		defer ticker.Stop()
	}

	jobCh := make(chan int)
	var wg sync.WaitGroup

	for i := 0; i < workerCount; i++ {
		wg.Add(1)
		go e.worker(ctx, articles, limiter, jobCh, out, &wg)
	}

	for idx, a := range articles {
		if ctx.Err() != nil {
			break
		}
		if a.Summary != "" && a.MediaURL != "" {
			continue // nothing to fill
		}
		jobCh <- idx
	}
	close(jobCh)

	wg.Wait()

	return out
}

func (e *Enricher) worker(
	ctx context.Context,
	articles []domain.Article,
	limiter <-chan time.Time,
	jobCh <-chan int,
	out []domain.Article,
	wg *sync.WaitGroup,
) {
	defer wg.Done()

	for idx := range jobCh {
		if ctx.Err() != nil {
			return
		}

		if limiter != nil {
			select {
			case <-ctx.Done():
				return
			case <-limiter:
			}
		}

		art := articles[idx]
		if enriched, err := e.fetchAndFill(ctx, art); err != nil {
			e.log.WarnObj("article metadata scrape failed", "enrich_error", map[string]any{
				"url":   art.Link,
				"error": err.Error(),
			})
			out[idx] = art
		} else {
			out[idx] = enriched
		}
	}
}

// fetchAndFill fetches the article page and fills the empty fields
// from its metadata.
func (e *Enricher) fetchAndFill(ctx context.Context, art domain.Article) (domain.Article, error) {
	resp, err := e.client.Get(ctx, art.Link, nil)
	if err != nil {
		return art, fmt.Errorf("http fetch: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return art, fmt.Errorf("status %d", resp.StatusCode())
	}

	body := resp.Body()
	if len(body) > maxHTMLBodyBytes {
		body = body[:maxHTMLBodyBytes]
	}

	meta, err := parseMeta(body)
	if err != nil {
		return art, err
	}

	updated := art
	if updated.Summary == "" && meta.Description != "" {
		updated.Summary = meta.Description
	}
	if updated.MediaURL == "" && meta.ImageURL != "" {
		updated.MediaURL = resolveURL(meta.ImageURL, art.Link)
	}
	return updated, nil
}

// pageMeta holds metadata extracted from an HTML page.
type pageMeta struct {
	Description string
	ImageURL    string
}

// parseMeta extracts page metadata from the HTML body.
func parseMeta(body []byte) (pageMeta, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return pageMeta{}, fmt.Errorf("parse html: %w", err)
	}

	extract := func(sel string) string {
		if node := doc.Find(sel).First(); node.Length() > 0 {
			if val, ok := node.Attr("content"); ok {
				return strings.TrimSpace(val)
			}
		}
		return ""
	}

	pm := pageMeta{}
	pm.Description = firstNonEmpty(
		extract(`meta[property="og:description"]`),
		extract(`meta[name="description"]`),
	)
	pm.ImageURL = extract(`meta[property="og:image"]`)
	return pm, nil
}

// firstNonEmpty returns the first non-empty string from the given values.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

// resolveURL resolves a possibly relative URL against a base URL.
func resolveURL(raw, base string) string {
	if raw == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	if parsed.IsAbs() {
		return parsed.String()
	}

	baseURL, err := url.Parse(base)
	if err != nil {
		return raw
	}
	return baseURL.ResolveReference(parsed).String()
}
