package engine

import "sort"

// UnratedRating marks catalog musics that received no genre contribution.
// They stay in the ranking but never outrank a rated music.
const UnratedRating = -1

// RankMusics projects genre ratings onto musics through the reverse genre
// index and returns the full catalog ordered by rating descending, ties
// broken by ascending music id.
//
// A music tagged with several rated genres accumulates the sum of their
// ratings. Summing keeps the projection independent of genre iteration
// order.
func RankMusics(genreRatings map[string]float64, reverseIndex map[string][]string, allMusicIDs []string) []ScoredMusic {
	musicRatings := make(map[string]float64, len(allMusicIDs))

	for genre, rating := range genreRatings {
		for _, musicID := range reverseIndex[genre] {
			musicRatings[musicID] += rating
		}
	}

	ranked := make([]ScoredMusic, 0, len(allMusicIDs))
	for _, musicID := range allMusicIDs {
		rating, ok := musicRatings[musicID]
		if !ok {
			rating = UnratedRating
		}
		ranked = append(ranked, ScoredMusic{MusicID: musicID, Rating: rating})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Rating != ranked[j].Rating {
			return ranked[i].Rating > ranked[j].Rating
		}
		return ranked[i].MusicID < ranked[j].MusicID
	})

	return ranked
}
