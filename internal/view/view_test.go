package view

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dongbanlab/newswatch/internal/domain"
)

func collectionOf(articles ...domain.Article) *domain.Collection {
	return &domain.Collection{Articles: articles}
}

func TestApplyPagination(t *testing.T) {
	articles := make([]domain.Article, 25)
	for i := range articles {
		articles[i] = domain.Article{Title: fmt.Sprintf("article %02d", i)}
	}
	c := collectionOf(articles...)

	pg := Apply(c, Query{SortKey: SortTitle, Page: 1, PageSize: 10})
	assert.Equal(t, 3, pg.TotalPages)
	assert.Equal(t, 25, pg.Total)
	assert.Len(t, pg.Items, 10)

	pg = Apply(c, Query{SortKey: SortTitle, Page: 3, PageSize: 10})
	assert.Len(t, pg.Items, 5)

	// The engine does not clamp: out-of-range pages yield empty items.
	pg = Apply(c, Query{SortKey: SortTitle, Page: 4, PageSize: 10})
	assert.Len(t, pg.Items, 0)
	assert.Equal(t, 3, pg.TotalPages)
}

func TestApplyEmptyCollectionHasOnePage(t *testing.T) {
	pg := Apply(collectionOf(), Query{Page: 1, PageSize: 10})
	assert.Equal(t, 1, pg.TotalPages)
	assert.Equal(t, 0, pg.Total)
	assert.Empty(t, pg.Items)
}

func TestApplySearchFilterIsCaseInsensitive(t *testing.T) {
	c := collectionOf(
		domain.Article{Title: "Samsung Grows", Summary: ""},
		domain.Article{Title: "other", Summary: "partnership with SAMSUNG"},
		domain.Article{Title: "unrelated"},
	)

	pg := Apply(c, Query{Search: "samsung", Page: 1, PageSize: 10})
	assert.Equal(t, 2, pg.Total)
}

func TestApplyKeywordAndSourceFilters(t *testing.T) {
	c := collectionOf(
		domain.Article{Title: "a", Keyword: "kw1", Source: "연합뉴스"},
		domain.Article{Title: "b", Keyword: "kw1", Source: "한겨레"},
		domain.Article{Title: "c", Keyword: "kw2", Source: "연합뉴스"},
	)

	pg := Apply(c, Query{Keyword: "kw1", Page: 1, PageSize: 10})
	assert.Equal(t, 2, pg.Total)

	pg = Apply(c, Query{Keyword: "kw1", Source: "연합뉴스", Page: 1, PageSize: 10})
	require.Equal(t, 1, pg.Total)
	assert.Equal(t, "a", pg.Items[0].Title)

	// The "all" sentinel disables a filter.
	pg = Apply(c, Query{Keyword: FilterAll, Source: FilterAll, Page: 1, PageSize: 10})
	assert.Equal(t, 3, pg.Total)
}

func TestApplyFilterCompositionIsConjunction(t *testing.T) {
	c := collectionOf(
		domain.Article{Title: "동반성장 발표", Keyword: "kw1", Source: "s1"},
		domain.Article{Title: "동반성장 후속", Keyword: "kw2", Source: "s1"},
		domain.Article{Title: "동반성장 해설", Keyword: "kw1", Source: "s2"},
		domain.Article{Title: "무관한 기사", Keyword: "kw1", Source: "s1"},
	)

	pg := Apply(c, Query{Search: "동반성장", Keyword: "kw1", Source: "s1", Page: 1, PageSize: 10})
	require.Equal(t, 1, pg.Total)
	assert.Equal(t, "동반성장 발표", pg.Items[0].Title)
}

func TestApplyRecencySortIsLexicographicDescending(t *testing.T) {
	// The recency key sorts the raw published string, not parsed time.
	// Within one feed format that is also calendar order.
	c := collectionOf(
		domain.Article{Title: "older", Published: "2025-06-01 08:00:00"},
		domain.Article{Title: "newest", Published: "2025-06-03 09:00:00"},
		domain.Article{Title: "middle", Published: "2025-06-02 10:00:00"},
	)

	pg := Apply(c, Query{SortKey: SortRecency, Page: 1, PageSize: 10})
	require.Len(t, pg.Items, 3)
	assert.Equal(t, "newest", pg.Items[0].Title)
	assert.Equal(t, "middle", pg.Items[1].Title)
	assert.Equal(t, "older", pg.Items[2].Title)
}

func TestApplySortIsStable(t *testing.T) {
	c := collectionOf(
		domain.Article{Title: "same", Source: "first"},
		domain.Article{Title: "same", Source: "second"},
		domain.Article{Title: "same", Source: "third"},
	)

	once := Apply(c, Query{SortKey: SortTitle, Page: 1, PageSize: 10})
	twice := Apply(collectionOf(once.Items...), Query{SortKey: SortTitle, Page: 1, PageSize: 10})

	require.Len(t, twice.Items, 3)
	for i := range once.Items {
		assert.Equal(t, once.Items[i].Source, twice.Items[i].Source)
	}
}

func TestApplySourceSortPutsEmptySourceFirst(t *testing.T) {
	c := collectionOf(
		domain.Article{Title: "named", Source: "연합뉴스"},
		domain.Article{Title: "anonymous", Source: ""},
	)

	pg := Apply(c, Query{SortKey: SortSource, Page: 1, PageSize: 10})
	require.Len(t, pg.Items, 2)
	assert.Equal(t, "anonymous", pg.Items[0].Title)
}

func TestApplyDoesNotMutateCollection(t *testing.T) {
	c := collectionOf(
		domain.Article{Title: "z"},
		domain.Article{Title: "a"},
	)

	_ = Apply(c, Query{SortKey: SortTitle, Page: 1, PageSize: 10})

	assert.Equal(t, "z", c.Articles[0].Title, "the source collection must keep fetch order")
	assert.Equal(t, "a", c.Articles[1].Title)
}

func TestSources(t *testing.T) {
	c := collectionOf(
		domain.Article{Source: "연합뉴스"},
		domain.Article{Source: ""},
		domain.Article{Source: "한겨레"},
		domain.Article{Source: "연합뉴스"},
	)

	assert.Equal(t, []string{"연합뉴스", "한겨레"}, Sources(c))
}
