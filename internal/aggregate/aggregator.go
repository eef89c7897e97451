package aggregate

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dongbanlab/newswatch/internal/domain"
	"github.com/dongbanlab/newswatch/internal/logger"
	"github.com/dongbanlab/newswatch/pkg/feeds"
)

const (
	defaultMaxPerKeyword = 20
	defaultPacingDelay   = time.Second
)

// ErrNoKeywords is returned when a run is requested with no usable
// keywords; nothing is fetched in that case.
var ErrNoKeywords = errors.New("no keywords selected")

// Options tunes one aggregation run.
type Options struct {
	// MaxPerKeyword caps the entries taken from each keyword fetch.
	MaxPerKeyword int
	// Locale selects the feed edition.
	Locale feeds.Locale
	// Dedup drops candidates whose normalized URL was already accepted.
	Dedup bool
	// Filter applies the relevance term match after dedup.
	Filter bool
	// RelevanceTerms feed the relevance filter; ignored unless Filter is set.
	RelevanceTerms []string
	// Pacer paces successive keyword fetches. Nil means a one second
	// fixed delay.
	Pacer Pacer
}

// Aggregator runs the fetch → dedup → filter pipeline over an ordered
// keyword set and produces one immutable Collection per run.
type Aggregator struct {
	fetcher feeds.Fetcher
	opts    Options
	log     logger.Logger
	now     func() time.Time
}

// New builds an Aggregator. A nil fetcher panics early since every run
// would fail; a nil logger is substituted with NopLogger.
func New(fetcher feeds.Fetcher, opts Options, log logger.Logger) *Aggregator {
	if fetcher == nil {
		panic("aggregate: nil fetcher")
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	if opts.MaxPerKeyword < 1 {
		opts.MaxPerKeyword = defaultMaxPerKeyword
	}
	if opts.Pacer == nil {
		opts.Pacer = DelayPacer{Delay: defaultPacingDelay}
	}
	return &Aggregator{
		fetcher: fetcher,
		opts:    opts,
		log:     log,
		now:     time.Now,
	}
}

// Run executes one aggregation over the keywords in caller order.
// Keyword order decides which keyword wins a duplicate URL: the first
// keyword to produce a URL keeps it, later candidates at the same
// normalized URL are dropped, not merged.
//
// A fetch failure for one keyword degrades to zero results for that
// keyword, recorded as a FetchNotice; the run continues. Run only
// returns an error for an empty keyword set or cancellation.
func (a *Aggregator) Run(ctx context.Context, keywords []string) (*domain.Collection, error) {
	cleaned := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		if kw = strings.TrimSpace(kw); kw != "" {
			cleaned = append(cleaned, kw)
		}
	}
	if len(cleaned) == 0 {
		return nil, ErrNoKeywords
	}

	col := &domain.Collection{
		Keywords:  cleaned,
		StartedAt: a.now(),
	}
	seen := make(map[string]struct{})

	for i, kw := range cleaned {
		if i > 0 {
			if err := a.opts.Pacer.Wait(ctx); err != nil {
				return nil, err
			}
		}

		query := feeds.BuildQuery(kw, a.opts.Locale, a.opts.MaxPerKeyword)
		entries, err := a.fetcher.Fetch(ctx, query)
		if err != nil {
			a.log.WarnObj("keyword fetch failed", "fetch_failure", map[string]any{
				"keyword": kw,
				"error":   err.Error(),
			})
			col.Notices = append(col.Notices, domain.FetchNotice{
				Keyword: kw,
				Reason:  err.Error(),
			})
			col.Counts = append(col.Counts, domain.KeywordCount{Keyword: kw})
			continue
		}
		if len(entries) > a.opts.MaxPerKeyword {
			entries = entries[:a.opts.MaxPerKeyword]
		}

		accepted := 0
		crawledAt := a.now()
		for _, entry := range entries {
			art := buildArticle(entry, kw, crawledAt)

			if a.opts.Dedup {
				if _, dup := seen[art.NormalizedURL]; dup {
					continue
				}
				seen[art.NormalizedURL] = struct{}{}
			}
			if a.opts.Filter && !IsRelevant(art, a.opts.RelevanceTerms) {
				continue
			}

			col.Articles = append(col.Articles, art)
			accepted++
		}

		col.Counts = append(col.Counts, domain.KeywordCount{
			Keyword:  kw,
			Fetched:  len(entries),
			Accepted: accepted,
		})
		a.log.InfoObj("keyword collected", "keyword_done", map[string]any{
			"keyword":  kw,
			"fetched":  len(entries),
			"accepted": accepted,
		})
	}

	col.EndedAt = a.now()

	if col.Empty() {
		a.log.InfoObj("run produced no articles", "empty_result", map[string]any{
			"keywords": len(cleaned),
		})
	} else {
		a.log.InfoObj("run complete", "run_done", map[string]any{
			"keywords": len(cleaned),
			"articles": col.Len(),
			"failures": len(col.Notices),
		})
	}
	return col, nil
}
