package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tunegraph/backend/internal/models"
)

func TestCatalogPutAndFind(t *testing.T) {
	s := NewCatalogStore()
	require.NoError(t, s.Put(&models.Music{ID: "m1", Genres: []string{"jazz", "old school"}}))

	music, ok := s.FindByID("m1")
	require.True(t, ok)
	assert.ElementsMatch(t, []string{"jazz", "old school"}, []string(music.Genres))

	_, ok = s.FindByID("m2")
	assert.False(t, ok)
}

func TestCatalogRejectsGenrelessMusic(t *testing.T) {
	s := NewCatalogStore()
	assert.Error(t, s.Put(&models.Music{ID: "m1"}))
	assert.Error(t, s.Put(&models.Music{Genres: []string{"jazz"}}))
	assert.Zero(t, s.Count())
}

func TestCatalogReverseGenreIndex(t *testing.T) {
	s := NewCatalogStore()
	require.NoError(t, s.Put(&models.Music{ID: "m2", Genres: []string{"rock"}}))
	require.NoError(t, s.Put(&models.Music{ID: "m1", Genres: []string{"rock", "jazz"}}))

	reverse := s.ReverseGenreIndex()
	assert.Equal(t, []string{"m1", "m2"}, reverse["rock"])
	assert.Equal(t, []string{"m1"}, reverse["jazz"])
}

func TestCatalogReverseIndexInvalidatedOnPut(t *testing.T) {
	s := NewCatalogStore()
	require.NoError(t, s.Put(&models.Music{ID: "m1", Genres: []string{"rock"}}))
	_ = s.ReverseGenreIndex()

	require.NoError(t, s.Put(&models.Music{ID: "m2", Genres: []string{"rock"}}))
	assert.Equal(t, []string{"m1", "m2"}, s.ReverseGenreIndex()["rock"])
}

func TestCatalogAllMusicIDsSorted(t *testing.T) {
	s := NewCatalogStore()
	require.NoError(t, s.Put(&models.Music{ID: "b", Genres: []string{"g"}}))
	require.NoError(t, s.Put(&models.Music{ID: "a", Genres: []string{"g"}}))
	require.NoError(t, s.Put(&models.Music{ID: "c", Genres: []string{"g"}}))

	assert.Equal(t, []string{"a", "b", "c"}, s.AllMusicIDs())

	all := s.All()
	require.Len(t, all, 3)
	assert.Equal(t, "a", all[0].ID)
}

func TestCatalogClear(t *testing.T) {
	s := NewCatalogStore()
	require.NoError(t, s.Put(&models.Music{ID: "m1", Genres: []string{"g"}}))
	require.NoError(t, s.Clear())

	assert.Zero(t, s.Count())
	assert.Empty(t, s.ReverseGenreIndex())
}
