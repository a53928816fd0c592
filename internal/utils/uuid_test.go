package utils

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFavoriteID_Deterministic(t *testing.T) {
	first := FavoriteID("user-1", "r-1")
	second := FavoriteID("user-1", "r-1")

	assert.Equal(t, first, second)

	parsed, err := uuid.Parse(first)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(5), parsed.Version())
}

func TestFavoriteID_DistinctPairs(t *testing.T) {
	assert.NotEqual(t, FavoriteID("user-1", "r-1"), FavoriteID("user-2", "r-1"))
	assert.NotEqual(t, FavoriteID("user-1", "r-1"), FavoriteID("user-1", "r-2"))
	// the separator keeps "a:bc" and "ab:c" apart
	assert.NotEqual(t, FavoriteID("a", "bc"), FavoriteID("ab", "c"))
}

func TestUUIDGenerator_Generate(t *testing.T) {
	g := NewUUIDGenerator()

	a := g.Generate()
	b := g.Generate()
	assert.NotEqual(t, a, b)

	parsed, err := uuid.Parse(a)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), parsed.Version())
}
