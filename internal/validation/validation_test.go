package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidID(t *testing.T) {
	assert.True(t, ValidID("a"))
	assert.True(t, ValidID("user345"))
	assert.True(t, ValidID("M7"))
	assert.True(t, ValidID(strings.Repeat("x", MaxIDLength)))

	assert.False(t, ValidID(""))
	assert.False(t, ValidID("has space"))
	assert.False(t, ValidID("semi;colon"))
	assert.False(t, ValidID("dash-id"))
	assert.False(t, ValidID(strings.Repeat("x", MaxIDLength+1)))
}

func TestValidGenre(t *testing.T) {
	assert.True(t, ValidGenre("jazz"))
	assert.True(t, ValidGenre("old school"))
	assert.True(t, ValidGenre("60s"))

	assert.False(t, ValidGenre(""))
	assert.False(t, ValidGenre("   "))
	assert.False(t, ValidGenre(strings.Repeat("g", MaxIDLength+1)))
}
