package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tunegraph/backend/internal/models"
	"github.com/tunegraph/backend/internal/store"
)

func TestBuildGenreProfiles(t *testing.T) {
	users, catalog := fixtureStores(t)

	profiles, err := BuildGenreProfiles(users.Snapshot(), catalog)
	require.NoError(t, err)
	require.Len(t, profiles, 5)

	// a listened to m2 (samba, 60s) and m6 (60s, rock, old school) once each
	assert.Equal(t, GenreProfile{
		"samba":      1,
		"60s":        2,
		"rock":       1,
		"old school": 1,
	}, profiles["a"])

	// e listened to m11 (samba) once
	assert.Equal(t, GenreProfile{"samba": 1}, profiles["e"])
}

func TestBuildGenreProfilesRepeatListensAccumulate(t *testing.T) {
	catalog := store.NewCatalogStore()
	require.NoError(t, catalog.Put(&models.Music{ID: "m1", Genres: []string{"jazz", "instrumental"}}))

	users := store.NewUserStore()
	for i := 0; i < 3; i++ {
		require.NoError(t, users.Listen("a", "m1"))
	}

	profiles, err := BuildGenreProfiles(users.Snapshot(), catalog)
	require.NoError(t, err)
	assert.Equal(t, GenreProfile{"jazz": 3, "instrumental": 3}, profiles["a"])
}

func TestBuildGenreProfilesEmptyHistory(t *testing.T) {
	catalog := store.NewCatalogStore()
	require.NoError(t, catalog.Put(&models.Music{ID: "m1", Genres: []string{"jazz"}}))

	users := store.NewUserStore()
	require.NoError(t, users.Follow("a", "b"))

	profiles, err := BuildGenreProfiles(users.Snapshot(), catalog)
	require.NoError(t, err)
	assert.Empty(t, profiles["a"])
	assert.Empty(t, profiles["b"])
}

func TestBuildGenreProfilesMissingMusicFails(t *testing.T) {
	catalog := store.NewCatalogStore()
	require.NoError(t, catalog.Put(&models.Music{ID: "m1", Genres: []string{"jazz"}}))

	users := store.NewUserStore()
	require.NoError(t, users.Listen("a", "gone"))

	_, err := BuildGenreProfiles(users.Snapshot(), catalog)

	var consistencyErr *ConsistencyError
	require.ErrorAs(t, err, &consistencyErr)
	assert.Equal(t, "gone", consistencyErr.MusicID)
}
