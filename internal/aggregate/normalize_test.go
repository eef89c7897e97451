package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeURLDropsQueryAndFragment(t *testing.T) {
	key := NormalizeURL("https://news.example.com/articles/abc?utm_source=rss&ref=x#top")
	assert.Equal(t, "news.example.com/articles/abc", key)
}

func TestNormalizeURLIsSchemeIndependent(t *testing.T) {
	httpKey := NormalizeURL("http://news.example.com/articles/abc")
	httpsKey := NormalizeURL("https://news.example.com/articles/abc")
	assert.Equal(t, httpsKey, httpKey)
}

func TestNormalizeURLLowercasesHost(t *testing.T) {
	key := NormalizeURL("https://News.Example.COM/Articles/Abc")
	assert.Equal(t, "news.example.com/Articles/Abc", key)
}

func TestNormalizeURLFailsOpen(t *testing.T) {
	// Unparseable or degenerate inputs come back verbatim instead of
	// panicking or collapsing to a shared key.
	inputs := []string{
		"",
		"%gh&%ij",
		"http://bad host.example.com/a",
		"://nothing",
		"just some text",
	}
	for _, in := range inputs {
		assert.NotPanics(t, func() { NormalizeURL(in) }, "input %q", in)
	}

	assert.Equal(t, "%gh&%ij", NormalizeURL("%gh&%ij"))
	assert.Equal(t, "", NormalizeURL(""))
}
