package usecase

import (
	"context"
	"sort"

	"github.com/riskibarqy/futball/internal/domain/expectedgoals"
	"github.com/riskibarqy/futball/internal/domain/match"
	"github.com/riskibarqy/futball/internal/domain/shot"
)

// BuildXGTable folds finished matches into per-team expected goals. A match
// with a stats row for both sides uses those rows; otherwise the xg of its
// shots is summed. Each match adds to both sides: one side's xg for is the
// other's xg against. Records are sorted by team name.
func BuildXGTable(matches []match.Match, stats []match.TeamStats, shots []shot.Shot, teamNames map[int64]string) []expectedgoals.Record {
	statsXG := make(map[int64]map[int64]float64)
	for _, row := range stats {
		byTeam, ok := statsXG[row.MatchID]
		if !ok {
			byTeam = make(map[int64]float64, 2)
			statsXG[row.MatchID] = byTeam
		}
		byTeam[row.TeamID] = row.XG
	}

	shotXG := make(map[int64]map[int64]float64)
	for _, item := range shots {
		byTeam, ok := shotXG[item.MatchID]
		if !ok {
			byTeam = make(map[int64]float64, 2)
			shotXG[item.MatchID] = byTeam
		}
		byTeam[item.TeamID] += item.XG
	}
	shotGoals := goalsFromShots(shots)

	records := make(map[int64]*expectedgoals.Record)
	record := func(teamID int64) *expectedgoals.Record {
		if r, ok := records[teamID]; ok {
			return r
		}
		r := &expectedgoals.Record{TeamID: teamID, TeamName: teamName(teamNames, teamID)}
		records[teamID] = r
		return r
	}

	for _, m := range matches {
		if !m.IsFinished() {
			continue
		}
		homeXG, awayXG := matchXG(m, statsXG, shotXG)
		homeGoals, awayGoals := matchGoals(m, shotGoals)

		home := record(m.HomeTeamID)
		home.Matches++
		home.XGFor += homeXG
		home.XGAgainst += awayXG
		home.GoalsFor += homeGoals
		home.GoalsAgainst += awayGoals

		away := record(m.AwayTeamID)
		away.Matches++
		away.XGFor += awayXG
		away.XGAgainst += homeXG
		away.GoalsFor += awayGoals
		away.GoalsAgainst += homeGoals
	}

	out := make([]expectedgoals.Record, 0, len(records))
	for _, r := range records {
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TeamName != out[j].TeamName {
			return out[i].TeamName < out[j].TeamName
		}
		return out[i].TeamID < out[j].TeamID
	})
	return out
}

func matchXG(m match.Match, statsXG, shotXG map[int64]map[int64]float64) (float64, float64) {
	if byTeam, ok := statsXG[m.ID]; ok {
		home, homeOK := byTeam[m.HomeTeamID]
		away, awayOK := byTeam[m.AwayTeamID]
		if homeOK && awayOK {
			return home, away
		}
	}
	byTeam := shotXG[m.ID]
	return byTeam[m.HomeTeamID], byTeam[m.AwayTeamID]
}

type XGService struct {
	repos SeasonRepositories
}

func NewXGService(repos SeasonRepositories) *XGService {
	return &XGService{repos: repos}
}

func (s *XGService) Records(ctx context.Context, seasonID int64) ([]expectedgoals.Record, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.XGService.Records")
	defer span.End()

	data, err := s.repos.load(ctx, seasonID, seasonParts{shots: true, stats: true})
	if err != nil {
		return nil, err
	}
	return BuildXGTable(data.matches, data.stats, data.shots, data.teamNames), nil
}

// Summaries returns the presentation rows with per-match averages.
func (s *XGService) Summaries(ctx context.Context, seasonID int64) ([]expectedgoals.Summary, error) {
	records, err := s.Records(ctx, seasonID)
	if err != nil {
		return nil, err
	}
	return expectedgoals.Summaries(records), nil
}
