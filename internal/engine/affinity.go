package engine

import "github.com/tunegraph/backend/internal/store"

// GenreProfile maps genre label to aggregate listen weight: the sum of the
// user's play counts over every listened music tagged with that genre.
type GenreProfile map[string]int

// Profiles holds one genre-affinity profile per user id. Every user gets an
// entry, even with an empty listen history.
type Profiles map[string]GenreProfile

// BuildGenreProfiles derives the genre-affinity profile of every user from
// the current snapshot. A listen entry whose music id is missing from the
// catalog is store corruption and fails the whole computation.
func BuildGenreProfiles(users store.UserReader, catalog store.CatalogReader) (Profiles, error) {
	profiles := make(Profiles)

	for _, userID := range users.AllUserIDs() {
		user, ok := users.FindByID(userID)
		if !ok {
			continue
		}

		profile := make(GenreProfile)
		for musicID, count := range user.Listens {
			music, ok := catalog.FindByID(musicID)
			if !ok {
				return nil, &ConsistencyError{UserID: userID, MusicID: musicID}
			}
			for _, genre := range music.Genres {
				profile[genre] += count
			}
		}
		profiles[userID] = profile
	}

	return profiles, nil
}
