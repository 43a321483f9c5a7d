package shot

import (
	"math"
	"sort"

	"github.com/riskibarqy/futball/internal/domain/errs"
	"github.com/riskibarqy/futball/internal/platform/validation"
)

const (
	OutcomeGoal      = "goal"
	OutcomeSaved     = "saved"
	OutcomeBlocked   = "blocked"
	OutcomeOffTarget = "off_target"

	BodyPartRightFoot = "right_foot"
	BodyPartLeftFoot  = "left_foot"
	BodyPartHead      = "head"

	TypeOpenPlay = "open_play"
	TypePenalty  = "penalty"
	TypeFreeKick = "free_kick"
)

// Pitch bounds in vendor coordinates.
const (
	PitchLength = 120.0
	PitchWidth  = 80.0
)

// Shot is one attempt on goal. IsGoal is always derived from Outcome.
type Shot struct {
	ID       int64
	MatchID  int64   `validate:"gt=0"`
	TeamID   int64   `validate:"gt=0"`
	PlayerID *int64  `validate:"omitempty,gt=0"`
	Minute   int     `validate:"gte=0,lte=150"`
	Second   int     `validate:"gte=0,lte=59"`
	X        float64 `validate:"-"`
	Y        float64 `validate:"-"`
	XG       float64 `validate:"gte=0,lte=1"`
	Outcome  string  `validate:"oneof=goal saved blocked off_target"`
	IsGoal   bool    `validate:"-"`
	BodyPart string  `validate:"omitempty,oneof=right_foot left_foot head"`
	ShotType string  `validate:"omitempty,oneof=open_play penalty free_kick"`
}

// Prepared returns the shot with derived fields recomputed. Every write path
// stores the prepared form, whatever IsGoal the caller supplied.
func (s Shot) Prepared() Shot {
	s.IsGoal = s.Outcome == OutcomeGoal
	return s
}

// Validate checks field vocabularies and pitch geometry. Coordinates outside
// the pitch are referential failures.
func (s Shot) Validate() error {
	if s.X < 0 || s.X > PitchLength || math.IsNaN(s.X) {
		return errs.Referential("shot: x=%v outside [0,%v]", s.X, PitchLength)
	}
	if s.Y < 0 || s.Y > PitchWidth || math.IsNaN(s.Y) {
		return errs.Referential("shot: y=%v outside [0,%v]", s.Y, PitchWidth)
	}
	if err := validation.Struct("shot", s); err != nil {
		return errs.Input("%v", err)
	}
	return nil
}

// ValidateFor additionally requires the shooting team to be one of the two
// sides of the match.
func (s Shot) ValidateFor(matchID, homeTeamID, awayTeamID int64) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if s.MatchID != matchID {
		return errs.Referential("shot: match=%d does not belong to match=%d", s.MatchID, matchID)
	}
	if s.TeamID != homeTeamID && s.TeamID != awayTeamID {
		return errs.Referential("shot: team=%d is neither home=%d nor away=%d", s.TeamID, homeTeamID, awayTeamID)
	}
	return nil
}

// SortByTime orders shots by minute then second.
func SortByTime(items []Shot) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Minute != items[j].Minute {
			return items[i].Minute < items[j].Minute
		}
		return items[i].Second < items[j].Second
	})
}
