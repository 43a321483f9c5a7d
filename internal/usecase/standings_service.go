package usecase

import (
	"context"
	"strconv"

	"github.com/riskibarqy/futball/internal/domain/leaguestanding"
	"github.com/riskibarqy/futball/internal/domain/match"
	"github.com/riskibarqy/futball/internal/domain/shot"
)

// BuildTable folds finished matches into a ranked league table. Goals come
// from the stored score when present and from goal shots otherwise. Teams
// without a finished match are absent.
func BuildTable(matches []match.Match, shots []shot.Shot, teamNames map[int64]string) []leaguestanding.Standing {
	shotGoals := goalsFromShots(shots)
	rows := make(map[int64]*leaguestanding.Standing)
	row := func(teamID int64) *leaguestanding.Standing {
		if r, ok := rows[teamID]; ok {
			return r
		}
		r := &leaguestanding.Standing{TeamID: teamID, TeamName: teamName(teamNames, teamID)}
		rows[teamID] = r
		return r
	}

	for _, m := range matches {
		if !m.IsFinished() {
			continue
		}
		homeGoals, awayGoals := matchGoals(m, shotGoals)
		row(m.HomeTeamID).Record(homeGoals, awayGoals)
		row(m.AwayTeamID).Record(awayGoals, homeGoals)
	}

	out := make([]leaguestanding.Standing, 0, len(rows))
	for _, r := range rows {
		out = append(out, *r)
	}
	leaguestanding.Rank(out)
	return out
}

func teamName(names map[int64]string, teamID int64) string {
	if name, ok := names[teamID]; ok {
		return name
	}
	return "team " + strconv.FormatInt(teamID, 10)
}

type StandingsService struct {
	repos SeasonRepositories
}

func NewStandingsService(repos SeasonRepositories) *StandingsService {
	return &StandingsService{repos: repos}
}

// Table returns the season's ranked table with qualification and relegation
// zones of its competition.
func (s *StandingsService) Table(ctx context.Context, seasonID int64) ([]leaguestanding.Standing, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.Table")
	defer span.End()

	data, err := s.repos.load(ctx, seasonID, seasonParts{shots: true})
	if err != nil {
		return nil, err
	}

	rows := BuildTable(data.matches, data.shots, data.teamNames)
	leaguestanding.ApplyZones(rows, leaguestanding.RulesFor(data.competition.Name))
	return rows, nil
}
