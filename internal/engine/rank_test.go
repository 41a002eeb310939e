package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRankMusicsSumsAcrossGenres(t *testing.T) {
	genreRatings := map[string]float64{"rock": 2, "dance": 3}
	reverse := map[string][]string{
		"rock":  {"m1", "m2"},
		"dance": {"m2"},
	}

	ranked := RankMusics(genreRatings, reverse, []string{"m1", "m2"})
	require.Len(t, ranked, 2)

	// m2 is tagged with both genres and accumulates 2 + 3
	assert.Equal(t, "m2", ranked[0].MusicID)
	assert.InDelta(t, 5.0, ranked[0].Rating, 1e-9)
	assert.Equal(t, "m1", ranked[1].MusicID)
	assert.InDelta(t, 2.0, ranked[1].Rating, 1e-9)
}

func TestRankMusicsSentinelForUnrated(t *testing.T) {
	genreRatings := map[string]float64{"rock": 1}
	reverse := map[string][]string{"rock": {"m1"}}

	ranked := RankMusics(genreRatings, reverse, []string{"m1", "m2", "m3"})
	require.Len(t, ranked, 3)

	assert.Equal(t, "m1", ranked[0].MusicID)
	assert.Equal(t, float64(UnratedRating), ranked[1].Rating)
	assert.Equal(t, float64(UnratedRating), ranked[2].Rating)

	// Sentinel musics never outrank a rated one but stay in the list
	assert.Equal(t, []string{"m2", "m3"}, []string{ranked[1].MusicID, ranked[2].MusicID})
}

func TestRankMusicsTieBreakByID(t *testing.T) {
	genreRatings := map[string]float64{"rock": 1.5}
	reverse := map[string][]string{"rock": {"mB", "mA", "mC"}}

	ranked := RankMusics(genreRatings, reverse, []string{"mC", "mB", "mA"})

	ids := []string{ranked[0].MusicID, ranked[1].MusicID, ranked[2].MusicID}
	assert.Equal(t, []string{"mA", "mB", "mC"}, ids)
}

func TestRankMusicsEmptyRatings(t *testing.T) {
	ranked := RankMusics(nil, map[string][]string{}, []string{"m2", "m1"})
	require.Len(t, ranked, 2)

	// Everything is unrated; ordering falls back to ascending id
	assert.Equal(t, "m1", ranked[0].MusicID)
	assert.Equal(t, "m2", ranked[1].MusicID)
	assert.Equal(t, float64(UnratedRating), ranked[0].Rating)
}

func TestRankMusicsEmptyCatalog(t *testing.T) {
	ranked := RankMusics(map[string]float64{"rock": 1}, map[string][]string{}, nil)
	assert.Empty(t, ranked)
}
