package engine

// Similarity scores how much of what the target user already likes the other
// user also listens to. For every genre both profiles share, the target's own
// weight n contributes n when n <= 1 and 1 + 1/n otherwise, so a single
// listen counts for more than bulk repetition.
//
// The score is keyed off the target's weights, not the shared minimum, which
// makes it asymmetric: Similarity(p, a, b) != Similarity(p, b, a) in general.
// That asymmetry is intentional.
func Similarity(profiles Profiles, targetID, otherID string) float64 {
	target := profiles[targetID]
	other := profiles[otherID]

	var sim float64
	for genre, weight := range target {
		if weight <= 0 {
			continue
		}
		if other[genre] <= 0 {
			continue
		}
		if weight > 1 {
			sim += 1 + 1/float64(weight)
		} else {
			sim += float64(weight)
		}
	}
	return sim
}
