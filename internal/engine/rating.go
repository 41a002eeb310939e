package engine

import "github.com/tunegraph/backend/internal/store"

const (
	// followerBiasCoefficient scales the proximity weight: degree 1 gets 2,
	// degree 2 gets 1, degree 3 gets 2/3.
	followerBiasCoefficient = 2.0

	// maxBiasDegree is the last follow distance that still earns the
	// proximity weight.
	maxBiasDegree = 3

	// distantFollowerBias applies beyond maxBiasDegree and to unreachable
	// users alike (degree 0 deliberately shares it, so disconnected tastes
	// still contribute faintly).
	distantFollowerBias = 0.1

	// repeatGenreBias suppresses genres the target has already listened to;
	// discovery outweighs reinforcement 100 to 1.
	repeatGenreBias = 0.01
)

// followerBias converts a follow-graph degree into a contribution weight.
func followerBias(degree int) float64 {
	if degree >= 1 && degree <= maxBiasDegree {
		return followerBiasCoefficient / float64(degree)
	}
	return distantFollowerBias
}

// GenreRatings fuses similarity, graph distance and discovery bias into one
// score per genre. Every other user contributes to every genre in their
// profile; there is no early termination or pruning.
func GenreRatings(users store.UserReader, profiles Profiles, targetID string) map[string]float64 {
	target := profiles[targetID]
	ratings := make(map[string]float64)

	for otherID, profile := range profiles {
		if otherID == targetID {
			continue
		}

		sim := Similarity(profiles, targetID, otherID)
		if sim == 0 {
			sim = 1
		}
		bias := followerBias(FollowerDegree(users, targetID, otherID))

		for genre := range profile {
			discovery := 1.0
			if target[genre] > 0 {
				discovery = repeatGenreBias
			}
			ratings[genre] += sim * bias * discovery
		}
	}

	return ratings
}
