package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/futball/internal/domain/competition"
	"github.com/riskibarqy/futball/internal/domain/match"
	"github.com/riskibarqy/futball/internal/domain/season"
	"github.com/riskibarqy/futball/internal/domain/shot"
	"github.com/riskibarqy/futball/internal/domain/team"
)

// SeasonRepositories groups the read side of the record store that the
// season analytics need.
type SeasonRepositories struct {
	Competitions competition.Repository
	Seasons      season.Repository
	Teams        team.Repository
	Matches      match.Repository
	Shots        shot.Repository
}

type seasonData struct {
	season      season.Season
	competition competition.Competition
	matches     []match.Match
	shots       []shot.Shot
	stats       []match.TeamStats
	teamNames   map[int64]string
}

type seasonParts struct {
	shots bool
	stats bool
}

func (r SeasonRepositories) load(ctx context.Context, seasonID int64, parts seasonParts) (seasonData, error) {
	if seasonID <= 0 {
		return seasonData{}, fmt.Errorf("%w: season id must be positive", ErrInvalidInput)
	}

	item, ok, err := r.Seasons.GetByID(ctx, seasonID)
	if err != nil {
		return seasonData{}, fmt.Errorf("get season: %w", err)
	}
	if !ok {
		return seasonData{}, fmt.Errorf("%w: season=%d", ErrNotFound, seasonID)
	}
	data := seasonData{season: item}

	comp, ok, err := r.Competitions.GetByID(ctx, item.CompetitionID)
	if err != nil {
		return seasonData{}, fmt.Errorf("get competition: %w", err)
	}
	if ok {
		data.competition = comp
	}

	if data.matches, err = r.Matches.ListBySeason(ctx, seasonID); err != nil {
		return seasonData{}, fmt.Errorf("list matches: %w", err)
	}
	if parts.shots {
		if data.shots, err = r.Shots.ListBySeason(ctx, seasonID); err != nil {
			return seasonData{}, fmt.Errorf("list shots: %w", err)
		}
	}
	if parts.stats {
		if data.stats, err = r.Matches.ListTeamStatsBySeason(ctx, seasonID); err != nil {
			return seasonData{}, fmt.Errorf("list match team stats: %w", err)
		}
	}

	teams, err := r.Teams.List(ctx)
	if err != nil {
		return seasonData{}, fmt.Errorf("list teams: %w", err)
	}
	data.teamNames = make(map[int64]string, len(teams))
	for _, t := range teams {
		data.teamNames[t.ID] = t.Name
	}
	return data, nil
}

// goalsFromShots counts goal shots per match and team.
func goalsFromShots(shots []shot.Shot) map[int64]map[int64]int {
	out := make(map[int64]map[int64]int)
	for _, item := range shots {
		if !item.Prepared().IsGoal {
			continue
		}
		byTeam, ok := out[item.MatchID]
		if !ok {
			byTeam = make(map[int64]int, 2)
			out[item.MatchID] = byTeam
		}
		byTeam[item.TeamID]++
	}
	return out
}

// matchGoals returns the final score when stored, else the goal shots.
func matchGoals(m match.Match, shotGoals map[int64]map[int64]int) (int, int) {
	if m.HasScore() {
		return *m.HomeScore, *m.AwayScore
	}
	byTeam := shotGoals[m.ID]
	return byTeam[m.HomeTeamID], byTeam[m.AwayTeamID]
}
