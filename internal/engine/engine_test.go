package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tunegraph/backend/internal/models"
	"github.com/tunegraph/backend/internal/store"
)

// fixtureStores builds the reference scenario: five users a-e with follow
// edges a->{b,c}, b->{c,d,e}, c->{a} and a 12-music, 8-genre catalog.
func fixtureStores(t *testing.T) (*store.UserStore, *store.CatalogStore) {
	t.Helper()

	catalog := store.NewCatalogStore()
	musics := map[string][]string{
		"m1":  {"jazz", "old school", "instrumental"},
		"m2":  {"samba", "60s"},
		"m3":  {"rock", "alternative"},
		"m4":  {"rock", "alternative"},
		"m5":  {"folk", "instrumental"},
		"m6":  {"60s", "rock", "old school"},
		"m7":  {"alternative", "dance"},
		"m8":  {"electronic", "pop"},
		"m9":  {"60s", "rock"},
		"m10": {"60s", "jazz"},
		"m11": {"samba"},
		"m12": {"jazz", "instrumental"},
	}
	for id, genres := range musics {
		require.NoError(t, catalog.Put(&models.Music{ID: id, Genres: genres}))
	}

	users := store.NewUserStore()
	follows := [][2]string{
		{"a", "b"}, {"a", "c"},
		{"b", "c"}, {"b", "d"}, {"b", "e"},
		{"c", "a"},
	}
	for _, edge := range follows {
		require.NoError(t, users.Follow(edge[0], edge[1]))
	}

	listens := map[string][]string{
		"a": {"m2", "m6"},
		"b": {"m4", "m9"},
		"c": {"m8", "m7"},
		"d": {"m2", "m6", "m7"},
		"e": {"m11"},
	}
	for userID, musicIDs := range listens {
		for _, musicID := range musicIDs {
			require.NoError(t, users.Listen(userID, musicID))
		}
	}

	return users, catalog
}

func TestRecommendReferenceFixture(t *testing.T) {
	users, catalog := fixtureStores(t)
	e := New(users, catalog)

	ranked, err := e.Recommend(context.Background(), "a", 5)
	require.NoError(t, err)
	require.Len(t, ranked, 5)

	ids := make([]string, 0, len(ranked))
	for _, scored := range ranked {
		ids = append(ids, scored.MusicID)
	}

	// m7 carries the two strongest undiscovered genres (alternative, dance);
	// m3/m4 share alternative; m8 brings electronic/pop; m6 is the best of
	// the already-heard pack.
	assert.Equal(t, []string{"m7", "m3", "m4", "m8", "m6"}, ids)

	// Ratings are descending throughout
	for i := 1; i < len(ranked); i++ {
		assert.GreaterOrEqual(t, ranked[i-1].Rating, ranked[i].Rating)
	}
}

func TestRecommendFullOrdering(t *testing.T) {
	users, catalog := fixtureStores(t)
	e := New(users, catalog)

	ranked, err := e.Recommend(context.Background(), "a", 100)
	require.NoError(t, err)
	require.Len(t, ranked, 12)

	ids := make([]string, 0, len(ranked))
	for _, scored := range ranked {
		ids = append(ids, scored.MusicID)
	}

	// Musics sharing a's already-heard genres (m11 and friends) rank below
	// everything reachable through undiscovered genres; musics nobody
	// listened to close the list at the sentinel rating, ties by id.
	assert.Equal(t, []string{
		"m7", "m3", "m4", "m8", "m6", "m9", "m2", "m10", "m11", "m1", "m12", "m5",
	}, ids)

	assert.Equal(t, float64(UnratedRating), ranked[10].Rating)
	assert.Equal(t, float64(UnratedRating), ranked[11].Rating)
	assert.Greater(t, ranked[9].Rating, float64(UnratedRating))
}

func TestRecommendNoDuplicates(t *testing.T) {
	users, catalog := fixtureStores(t)
	e := New(users, catalog)

	for _, userID := range []string{"a", "b", "c", "d", "e"} {
		ranked, err := e.Recommend(context.Background(), userID, 12)
		require.NoError(t, err)

		seen := make(map[string]bool)
		for _, scored := range ranked {
			assert.False(t, seen[scored.MusicID], "duplicate %s for user %s", scored.MusicID, userID)
			seen[scored.MusicID] = true
		}
	}
}

func TestRecommendReturnsMinOfCatalogAndLimit(t *testing.T) {
	users, catalog := fixtureStores(t)
	e := New(users, catalog)

	ranked, err := e.Recommend(context.Background(), "a", 5)
	require.NoError(t, err)
	assert.Len(t, ranked, 5)

	ranked, err = e.Recommend(context.Background(), "a", 50)
	require.NoError(t, err)
	assert.Len(t, ranked, 12)
}

func TestRecommendSmallCatalogNeverPads(t *testing.T) {
	catalog := store.NewCatalogStore()
	require.NoError(t, catalog.Put(&models.Music{ID: "s1", Genres: []string{"jazz"}}))
	require.NoError(t, catalog.Put(&models.Music{ID: "s2", Genres: []string{"rock"}}))
	require.NoError(t, catalog.Put(&models.Music{ID: "s3", Genres: []string{"folk"}}))

	users := store.NewUserStore()
	require.NoError(t, users.Follow("a", "b"))
	require.NoError(t, users.Listen("b", "s1"))

	e := New(users, catalog)
	ranked, err := e.Recommend(context.Background(), "a", 5)
	require.NoError(t, err)

	require.Len(t, ranked, 3)
	assert.Equal(t, "s1", ranked[0].MusicID)
}

func TestRecommendIdempotent(t *testing.T) {
	users, catalog := fixtureStores(t)
	e := New(users, catalog)

	first, err := e.Recommend(context.Background(), "a", 12)
	require.NoError(t, err)
	second, err := e.Recommend(context.Background(), "a", 12)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRecommendUnknownUser(t *testing.T) {
	users, catalog := fixtureStores(t)
	e := New(users, catalog)

	_, err := e.Recommend(context.Background(), "nobody", 5)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestRecommendCorruptListenEntry(t *testing.T) {
	catalog := store.NewCatalogStore()
	require.NoError(t, catalog.Put(&models.Music{ID: "m1", Genres: []string{"jazz"}}))

	users := store.NewUserStore()
	require.NoError(t, users.Listen("a", "m1"))
	require.NoError(t, users.Listen("b", "ghost")) // never entered the catalog

	e := New(users, catalog)
	_, err := e.Recommend(context.Background(), "a", 5)

	var consistencyErr *ConsistencyError
	require.ErrorAs(t, err, &consistencyErr)
	assert.Equal(t, "b", consistencyErr.UserID)
	assert.Equal(t, "ghost", consistencyErr.MusicID)
}

func TestRecommendEmptyHistoryNoFollows(t *testing.T) {
	users, catalog := fixtureStores(t)
	// f has never listened to or followed anyone; it only exists because
	// someone follows it.
	require.NoError(t, users.Follow("e", "f"))

	e := New(users, catalog)
	ranked, err := e.Recommend(context.Background(), "f", 12)
	require.NoError(t, err)
	require.Len(t, ranked, 12)

	// With no listens and no follows, every other user contributes the flat
	// 0.1 distant-follower weight to each genre in their profile, and no
	// genre is suppressed by the discovery bias. The list is still fully
	// ranked: rated musics first, then the sentinel pair by ascending id.
	ids := make([]string, 0, len(ranked))
	for _, scored := range ranked {
		ids = append(ids, scored.MusicID)
	}
	assert.Equal(t, []string{
		"m6", "m2", "m3", "m4", "m9", "m7", "m10", "m11", "m1", "m8", "m12", "m5",
	}, ids)

	wantRatings := []float64{0.8, 0.6, 0.6, 0.6, 0.6, 0.5, 0.3, 0.3, 0.2, 0.2, UnratedRating, UnratedRating}
	for i, want := range wantRatings {
		assert.InDelta(t, want, ranked[i].Rating, 1e-9, "rank %d (%s)", i, ranked[i].MusicID)
	}
}

func TestRecommendDefaultLimit(t *testing.T) {
	users, catalog := fixtureStores(t)
	e := New(users, catalog)

	ranked, err := e.Recommend(context.Background(), "a", 0)
	require.NoError(t, err)
	assert.Len(t, ranked, DefaultLimit)
}
