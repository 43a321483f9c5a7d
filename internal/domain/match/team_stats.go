package match

import (
	"math"

	"github.com/riskibarqy/futball/internal/domain/errs"
	"github.com/riskibarqy/futball/internal/platform/validation"
)

const (
	proxyOnTargetWeight  = 0.30
	proxyOffTargetWeight = 0.08
)

// TeamStats is the per (match, team) summary. At most one row exists per
// pair and the team must play in the match.
type TeamStats struct {
	MatchID       int64   `validate:"gt=0"`
	TeamID        int64   `validate:"gt=0"`
	XG            float64 `validate:"gte=0"`
	Shots         int     `validate:"gte=0"`
	ShotsOnTarget int     `validate:"gte=0,ltefield=Shots"`
}

func (s TeamStats) Validate() error {
	if err := validation.Struct("match team stats", s); err != nil {
		return errs.Input("%v", err)
	}
	return nil
}

// ValidateFor checks the row against the match it belongs to.
func (s TeamStats) ValidateFor(m Match) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if s.MatchID != m.ID {
		return errs.Referential("match team stats: match=%d does not belong to match=%d", s.MatchID, m.ID)
	}
	if !m.Involves(s.TeamID) {
		return errs.Referential("match team stats: team=%d does not play in match %s", s.TeamID, m.MatchID)
	}
	return nil
}

// ProxyXG estimates expected goals from shot counts for datasets without
// shot-level values: on target shots weigh 0.30, the rest 0.08.
func ProxyXG(shots, shotsOnTarget int) float64 {
	if shots < shotsOnTarget {
		shots = shotsOnTarget
	}
	xg := float64(shotsOnTarget)*proxyOnTargetWeight + float64(shots-shotsOnTarget)*proxyOffTargetWeight
	return math.Round(xg*1000) / 1000
}
