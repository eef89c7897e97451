package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	s, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "ko", s.Language)
	assert.Equal(t, "KR", s.Country)
	assert.Equal(t, 20, s.MaxPerKeyword)
	assert.Equal(t, 10, s.PageSize)
	assert.True(t, s.Dedup)
	assert.False(t, s.Filter)
	assert.Equal(t, time.Second, s.PacingDelay)
	assert.NotEmpty(t, s.Keywords, "the default keyword set ships with the binary")
	assert.NotEmpty(t, s.RelevanceTerms)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "newswatch.yaml")
	content := `
keywords:
  - "동반성장 지수"
  - "  "
  - "공정거래"
language: EN
country: us
max_per_keyword: 5
pacing_delay: 0s
filter: true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	s, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"동반성장 지수", "공정거래"}, s.Keywords, "blank entries are dropped")
	assert.Equal(t, "en", s.Language, "language codes are lowercased")
	assert.Equal(t, "US", s.Country, "country codes are uppercased")
	assert.Equal(t, 5, s.MaxPerKeyword)
	assert.Equal(t, time.Duration(0), s.PacingDelay)
	assert.True(t, s.Filter)
}

func TestLoadMissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_per_keyword: 0\n"), 0o600))

	_, err := Load(path)
	assert.ErrorContains(t, err, "max_per_keyword")
}

func TestLoadRejectsEmptyKeywords(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("keywords: []\n"), 0o600))

	_, err := Load(path)
	assert.ErrorContains(t, err, "keywords")
}
