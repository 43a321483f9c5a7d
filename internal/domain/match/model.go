package match

import (
	"strings"
	"time"

	"github.com/riskibarqy/futball/internal/domain/errs"
	"github.com/riskibarqy/futball/internal/platform/validation"
)

const (
	StatusScheduled = "scheduled"
	StatusFinished  = "finished"
	StatusPostponed = "postponed"
)

// Match is one game. MatchID is the external reconciliation key shared with
// data vendors and is globally unique.
type Match struct {
	ID                int64
	MatchID           string    `validate:"required,max=200"`
	SeasonID          int64     `validate:"gt=0"`
	HomeTeamID        int64     `validate:"gt=0"`
	AwayTeamID        int64     `validate:"gt=0"`
	MatchDate         time.Time `validate:"required"`
	Status            string    `validate:"oneof=scheduled finished postponed"`
	HomeScore         *int      `validate:"omitempty,gte=0"`
	AwayScore         *int      `validate:"omitempty,gte=0"`
	HomeShots         *int      `validate:"omitempty,gte=0"`
	AwayShots         *int      `validate:"omitempty,gte=0"`
	HomeShotsOnTarget *int      `validate:"omitempty,gte=0"`
	AwayShotsOnTarget *int      `validate:"omitempty,gte=0"`
}

// Validate is called by every write path before the record store sees the
// row. Same-team fixtures are a referential failure, not an input one.
func (m Match) Validate() error {
	if err := validation.Struct("match", m); err != nil {
		return errs.Input("%v", err)
	}
	if m.HomeTeamID == m.AwayTeamID {
		return errs.Referential("match %s: home team and away team must differ (team=%d)", m.MatchID, m.HomeTeamID)
	}
	return nil
}

func (m Match) IsFinished() bool {
	return IsFinishedStatus(m.Status)
}

func (m Match) HasScore() bool {
	return m.HomeScore != nil && m.AwayScore != nil
}

func (m Match) Involves(teamID int64) bool {
	return teamID == m.HomeTeamID || teamID == m.AwayTeamID
}

// Opponent returns the other side of the match, or 0 when teamID does not
// play in it.
func (m Match) Opponent(teamID int64) int64 {
	switch teamID {
	case m.HomeTeamID:
		return m.AwayTeamID
	case m.AwayTeamID:
		return m.HomeTeamID
	default:
		return 0
	}
}

func NormalizeStatus(value string) string {
	status := strings.ToLower(strings.TrimSpace(value))
	if status == "" {
		return StatusScheduled
	}
	return status
}

// IsFinishedStatus accepts only the stored finished status, in any case.
func IsFinishedStatus(status string) bool {
	return NormalizeStatus(status) == StatusFinished
}

// SortByDateDesc orders matches the way listings show them: newest first,
// then by id for equal dates.
func SortByDateDesc(items []Match) {
	sortMatches(items)
}
