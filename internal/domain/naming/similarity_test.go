package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSequenceRatio(t *testing.T) {
	t.Parallel()

	s := SequenceRatio{}
	assert.Equal(t, 1.0, s.Score("arsenal", "arsenal"))
	assert.Equal(t, 0.0, s.Score("", "arsenal"))
	assert.InDelta(t, 0.6, s.Score("abcde", "abcxy"), 1e-9)
	assert.Greater(t, s.Score("tottenham hotspur", "tottenham"), 0.6)
}

func TestLevenshteinRatio(t *testing.T) {
	t.Parallel()

	s := LevenshteinRatio{}
	assert.Equal(t, 1.0, s.Score("", ""))
	assert.InDelta(t, 0.75, s.Score("abcd", "abce"), 1e-9)
}

func TestBestMatch(t *testing.T) {
	t.Parallel()

	candidates := []string{"Manchester City", "Manchester United", "Newcastle United"}

	got, ok := BestMatch(SequenceRatio{}, "Manchester United FC", candidates, DefaultThreshold)
	require.True(t, ok)
	assert.Equal(t, "Manchester United", got.Name)
	assert.Equal(t, 1.0, got.Score)

	_, ok = BestMatch(SequenceRatio{}, "Girona", candidates, DefaultThreshold)
	assert.False(t, ok)
}

func TestSimilarityByName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "levenshtein", SimilarityByName("levenshtein").Name())
	assert.Equal(t, "sequence", SimilarityByName("").Name())
}
