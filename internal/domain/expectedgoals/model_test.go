package expectedgoals

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummaries(t *testing.T) {
	t.Parallel()

	got := Summaries([]Record{
		{TeamName: "Wolves", Matches: 3, XGFor: 4.0, XGAgainst: 2.0},
		{TeamName: "Arsenal", Matches: 2, XGFor: 3.333, XGAgainst: 1.111},
		{TeamName: "Nobody"},
	})

	assert.Equal(t, "Arsenal", got[0].TeamName)
	assert.Equal(t, 1.67, got[0].XGForAvg)
	assert.Equal(t, 0.56, got[0].XGAgainstAvg)
	assert.Equal(t, 3.33, got[0].XGFor)
	assert.Equal(t, "Nobody", got[1].TeamName)
	assert.Equal(t, 0.0, got[1].XGForAvg)
	assert.Equal(t, 1.33, got[2].XGForAvg)
}
