package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSimilaritySharedGenres(t *testing.T) {
	profiles := Profiles{
		"a": {"rock": 1, "60s": 2, "samba": 1},
		"b": {"rock": 5, "60s": 1},
	}

	// rock contributes 1 (weight 1), 60s contributes 1 + 1/2 (weight 2);
	// samba is not shared.
	assert.InDelta(t, 2.5, Similarity(profiles, "a", "b"), 1e-9)
}

func TestSimilarityIsAsymmetric(t *testing.T) {
	profiles := Profiles{
		"a": {"jazz": 3},
		"b": {"jazz": 1},
	}

	ab := Similarity(profiles, "a", "b")
	ba := Similarity(profiles, "b", "a")

	assert.InDelta(t, 1+1.0/3, ab, 1e-9)
	assert.InDelta(t, 1, ba, 1e-9)
	assert.NotEqual(t, ab, ba)
}

func TestSimilarityDiminishingReturns(t *testing.T) {
	// Heavy repetition on one genre is worth barely more than a single
	// listen, never more than 2.
	profiles := Profiles{
		"a": {"jazz": 100},
		"b": {"jazz": 1},
	}
	sim := Similarity(profiles, "a", "b")
	assert.Greater(t, sim, 1.0)
	assert.Less(t, sim, 2.0)
}

func TestSimilarityNoOverlap(t *testing.T) {
	profiles := Profiles{
		"a": {"jazz": 2},
		"b": {"rock": 4},
	}
	assert.Zero(t, Similarity(profiles, "a", "b"))
}

func TestSimilarityUnknownUsers(t *testing.T) {
	profiles := Profiles{"a": {"jazz": 1}}
	assert.Zero(t, Similarity(profiles, "a", "missing"))
	assert.Zero(t, Similarity(profiles, "missing", "a"))
}
