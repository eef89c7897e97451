package feeds

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildQueryEncodesKeyword(t *testing.T) {
	q := BuildQuery("동반성장 지수 기업 활동", DefaultLocale(), 100)

	rendered := q.URL()
	assert.True(t, strings.HasPrefix(rendered, DefaultEndpoint+"?"))
	assert.NotContains(t, rendered, " ", "keyword must be percent-encoded")
	assert.NotContains(t, rendered, "동반성장", "raw hangul must not appear in the URL")

	parsed, err := url.Parse(rendered)
	require.NoError(t, err)
	assert.Equal(t, "동반성장 지수 기업 활동", parsed.Query().Get("q"))
}

func TestBuildQueryDefaultLocaleParams(t *testing.T) {
	q := BuildQuery("kw", Locale{}, 50)

	assert.Equal(t, "kw", q.Keyword)
	assert.Equal(t, "ko", q.Params.Get("hl"))
	assert.Equal(t, "KR", q.Params.Get("gl"))
	assert.Equal(t, "KR:ko", q.Params.Get("ceid"))
	assert.Equal(t, "50", q.Params.Get("num"))
}

func TestBuildQueryCustomLocale(t *testing.T) {
	q := BuildQuery("economy", Locale{Language: "en", Country: "US"}, 20)

	assert.Equal(t, "en", q.Params.Get("hl"))
	assert.Equal(t, "US", q.Params.Get("gl"))
	assert.Equal(t, "US:en", q.Params.Get("ceid"))
}

func TestBuildQueryClampsMaxResults(t *testing.T) {
	q := BuildQuery("kw", DefaultLocale(), 0)
	assert.Equal(t, "1", q.Params.Get("num"))
}
