// Package view applies search, keyword and source filters plus sorting
// and pagination over an aggregated collection. It never mutates the
// collection: every query works on a fresh copy of the article slice.
package view

import (
	"sort"
	"strings"

	"github.com/dongbanlab/newswatch/internal/domain"
)

// Sort keys accepted by Query.SortKey.
const (
	SortRecency = "recency"
	SortTitle   = "title"
	SortSource  = "source"
)

// FilterAll is the sentinel that disables the keyword or source filter.
const FilterAll = "all"

// Query describes one read over a collection.
//
// Page is a caller contract, not clamped here: a page beyond the last
// one yields empty Items with TotalPages unchanged.
type Query struct {
	// Search keeps only articles whose title or summary contains the
	// term, case insensitively. Empty means no search filter.
	Search string
	// Keyword retains exact keyword matches; empty or "all" disables it.
	Keyword string
	// Source retains exact source matches; empty or "all" disables it.
	Source string
	// SortKey is one of SortRecency, SortTitle, SortSource. Unknown
	// values fall back to SortRecency.
	SortKey string
	// Page is 1-based. Values below 1 are treated as 1.
	Page int
	// PageSize is the page length; values below 1 are treated as 1.
	PageSize int
}

// Page is one paginated slice of a filtered, sorted collection.
type Page struct {
	Items      []domain.Article
	Total      int
	TotalPages int
}

// Apply evaluates the query against the collection and returns the
// requested page together with the page count over the filtered set.
func Apply(c *domain.Collection, q Query) Page {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = 1
	}

	filtered := filter(c, q)
	sortArticles(filtered, q.SortKey)

	total := len(filtered)
	totalPages := (total + q.PageSize - 1) / q.PageSize
	if totalPages < 1 {
		totalPages = 1
	}

	start := (q.Page - 1) * q.PageSize
	if start >= total {
		return Page{Items: []domain.Article{}, Total: total, TotalPages: totalPages}
	}
	end := start + q.PageSize
	if end > total {
		end = total
	}

	return Page{Items: filtered[start:end], Total: total, TotalPages: totalPages}
}

// filter copies the articles that pass the conjunction of the search,
// keyword and source predicates. The predicates are independent, so
// evaluation order does not matter.
func filter(c *domain.Collection, q Query) []domain.Article {
	if c == nil {
		return nil
	}

	search := strings.ToLower(strings.TrimSpace(q.Search))
	keyword := strings.TrimSpace(q.Keyword)
	source := strings.TrimSpace(q.Source)
	keywordActive := keyword != "" && !strings.EqualFold(keyword, FilterAll)
	sourceActive := source != "" && !strings.EqualFold(source, FilterAll)

	out := make([]domain.Article, 0, len(c.Articles))
	for _, a := range c.Articles {
		if search != "" {
			text := strings.ToLower(a.Title + " " + a.Summary)
			if !strings.Contains(text, search) {
				continue
			}
		}
		if keywordActive && a.Keyword != keyword {
			continue
		}
		if sourceActive && a.Source != source {
			continue
		}
		out = append(out, a)
	}
	return out
}

// sortArticles orders the slice in place with a stable sort.
//
// Recency sorts on the raw published string, descending. That is
// lexicographic, not calendar order; the feed source emits a uniform
// timestamp format in practice, and callers relying on calendar order
// across mixed formats will be misordered.
func sortArticles(articles []domain.Article, key string) {
	switch key {
	case SortTitle:
		sort.SliceStable(articles, func(i, j int) bool {
			return articles[i].Title < articles[j].Title
		})
	case SortSource:
		sort.SliceStable(articles, func(i, j int) bool {
			return articles[i].Source < articles[j].Source
		})
	default:
		sort.SliceStable(articles, func(i, j int) bool {
			return articles[i].Published > articles[j].Published
		})
	}
}

// Sources lists the distinct non-empty sources in the collection, in
// first-seen order. The CLI uses it to offer source filter choices.
func Sources(c *domain.Collection) []string {
	if c == nil {
		return nil
	}
	seen := make(map[string]struct{})
	var out []string
	for _, a := range c.Articles {
		if a.Source == "" {
			continue
		}
		if _, ok := seen[a.Source]; ok {
			continue
		}
		seen[a.Source] = struct{}{}
		out = append(out, a.Source)
	}
	return out
}
