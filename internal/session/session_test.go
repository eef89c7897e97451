package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dongbanlab/newswatch/internal/domain"
)

func TestStorePutGet(t *testing.T) {
	store := NewStore()

	_, ok := store.Get("s1")
	assert.False(t, ok)

	col := &domain.Collection{Articles: []domain.Article{{Title: "a"}}}
	store.Put("s1", col)

	snap, ok := store.Get("s1")
	require.True(t, ok)
	assert.Same(t, col, snap.Collection)
	assert.False(t, snap.RanAt.IsZero())
}

func TestStoreReplacesWholesale(t *testing.T) {
	store := NewStore()

	first := &domain.Collection{Articles: []domain.Article{{Title: "old"}}}
	store.Put("s1", first)
	oldSnap, _ := store.Get("s1")

	second := &domain.Collection{Articles: []domain.Article{{Title: "new"}}}
	store.Put("s1", second)

	snap, ok := store.Get("s1")
	require.True(t, ok)
	assert.Same(t, second, snap.Collection)

	// The previously read snapshot stays valid and untouched.
	assert.Equal(t, "old", oldSnap.Collection.Articles[0].Title)
}

func TestStoreSessionsAreIndependent(t *testing.T) {
	store := NewStore()
	store.Put("s1", &domain.Collection{})
	store.Put("s2", &domain.Collection{})

	assert.Equal(t, 2, store.Len())

	store.Clear("s1")
	assert.Equal(t, 1, store.Len())

	_, ok := store.Get("s1")
	assert.False(t, ok)
	_, ok = store.Get("s2")
	assert.True(t, ok)
}
