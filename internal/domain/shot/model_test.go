package shot

import (
	"errors"
	"testing"

	"github.com/riskibarqy/futball/internal/domain/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVocabulary(t *testing.T) {
	t.Parallel()

	outcomes := map[string]string{
		"Goal":             OutcomeGoal,
		"Saved":            OutcomeSaved,
		"Saved Off Target": OutcomeSaved,
		"Blocked":          OutcomeBlocked,
		"Off T":            OutcomeOffTarget,
		"Wayward":          OutcomeOffTarget,
		"Post":             OutcomeOffTarget,
		"goal":             OutcomeOffTarget,
		"Saved to Post":    OutcomeOffTarget,
		"":                 OutcomeOffTarget,
	}
	for vendor, want := range outcomes {
		assert.Equal(t, want, OutcomeFromVendor(vendor), "vendor=%q", vendor)
	}

	assert.Equal(t, BodyPartHead, BodyPartFromVendor("Head"))
	assert.Equal(t, "", BodyPartFromVendor("Other"))
	assert.Equal(t, TypePenalty, TypeFromVendor("Penalty"))
	assert.Equal(t, "", TypeFromVendor("Corner"))
}

func TestPreparedDerivesIsGoal(t *testing.T) {
	t.Parallel()

	assert.True(t, Shot{Outcome: OutcomeGoal}.Prepared().IsGoal)
	assert.False(t, Shot{Outcome: OutcomeOffTarget, IsGoal: true}.Prepared().IsGoal)
}

func TestValidateGeometry(t *testing.T) {
	t.Parallel()

	base := Shot{MatchID: 1, TeamID: 2, X: 100, Y: 40, XG: 0.1, Outcome: OutcomeSaved}
	require.NoError(t, base.Validate())

	cases := []Shot{
		{MatchID: 1, TeamID: 2, X: 120.5, Y: 40, Outcome: OutcomeSaved},
		{MatchID: 1, TeamID: 2, X: -1, Y: 40, Outcome: OutcomeSaved},
		{MatchID: 1, TeamID: 2, X: 10, Y: 80.1, Outcome: OutcomeSaved},
	}
	for _, item := range cases {
		err := item.Validate()
		require.Error(t, err)
		assert.True(t, errors.Is(err, errs.ErrReferential), "shot=%+v", item)
	}

	edge := Shot{MatchID: 1, TeamID: 2, X: 120, Y: 80, Outcome: OutcomeGoal}
	require.NoError(t, edge.Validate())
}

func TestValidateForTeamMembership(t *testing.T) {
	t.Parallel()

	item := Shot{MatchID: 7, TeamID: 3, X: 90, Y: 30, Outcome: OutcomeBlocked}
	require.NoError(t, item.ValidateFor(7, 3, 4))

	err := item.ValidateFor(7, 5, 4)
	assert.True(t, errors.Is(err, errs.ErrReferential))
}

func TestValidateVocabulary(t *testing.T) {
	t.Parallel()

	err := Shot{MatchID: 1, TeamID: 2, X: 1, Y: 1, Outcome: "miss"}.Validate()
	assert.True(t, errors.Is(err, errs.ErrInput))

	err = Shot{MatchID: 1, TeamID: 2, X: 1, Y: 1, Outcome: OutcomeGoal, BodyPart: "knee"}.Validate()
	assert.True(t, errors.Is(err, errs.ErrInput))
}

func TestSortByTime(t *testing.T) {
	t.Parallel()

	items := []Shot{{ID: 1, Minute: 50, Second: 3}, {ID: 2, Minute: 12, Second: 40}, {ID: 3, Minute: 12, Second: 5}}
	SortByTime(items)
	assert.Equal(t, []int64{3, 2, 1}, []int64{items[0].ID, items[1].ID, items[2].ID})
}
