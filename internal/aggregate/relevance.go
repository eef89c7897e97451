package aggregate

import (
	"strings"

	"github.com/dongbanlab/newswatch/internal/domain"
)

// IsRelevant reports whether any relevance term occurs, case
// insensitively, in the article title or summary. Articles without a
// summary are judged on the title alone. An empty term set filters
// nothing and keeps every article.
//
// This is deliberately a coarse substring heuristic; it trades
// precision for predictability.
func IsRelevant(a domain.Article, terms []string) bool {
	cleaned := make([]string, 0, len(terms))
	for _, t := range terms {
		if t = strings.TrimSpace(t); t != "" {
			cleaned = append(cleaned, strings.ToLower(t))
		}
	}
	if len(cleaned) == 0 {
		return true
	}

	text := strings.ToLower(a.Title + " " + a.Summary)
	for _, t := range cleaned {
		if strings.Contains(text, t) {
			return true
		}
	}
	return false
}
