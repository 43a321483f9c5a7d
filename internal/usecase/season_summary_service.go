package usecase

import (
	"context"
	"fmt"

	"github.com/sourcegraph/conc/pool"

	"github.com/riskibarqy/futball/internal/domain/expectedgoals"
	"github.com/riskibarqy/futball/internal/domain/leaguestanding"
	"github.com/riskibarqy/futball/internal/domain/shot"
)

const (
	summaryTopRows    = 5
	summaryBottomRows = 3
	noTeam            = "-"
)

// TeamMetric names a team and the value it leads a category with.
type TeamMetric struct {
	Team  string  `json:"team"`
	Value float64 `json:"value"`
}

type SeasonSummary struct {
	SeasonID        int64                     `json:"season_id"`
	Season          string                    `json:"season"`
	Competition     string                    `json:"competition"`
	FinishedMatches int                       `json:"finished_matches"`
	Goals           int                       `json:"goals"`
	GoalsPerMatch   float64                   `json:"goals_per_match"`
	Leader          string                    `json:"leader"`
	TopAttack       TeamMetric                `json:"top_attack"`
	BestDefence     TeamMetric                `json:"best_defence"`
	Top             []leaguestanding.Standing `json:"top"`
	Bottom          []leaguestanding.Standing `json:"bottom"`
}

type ShotPoint struct {
	TeamID  int64   `json:"team_id"`
	MatchID int64   `json:"match_id"`
	Minute  int     `json:"minute"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	XG      float64 `json:"xg"`
	Outcome string  `json:"outcome"`
}

// SeasonSummaryService assembles the season overview from the standings and
// xG aggregations.
type SeasonSummaryService struct {
	repos     SeasonRepositories
	standings *StandingsService
	xg        *XGService
}

func NewSeasonSummaryService(repos SeasonRepositories, standings *StandingsService, xg *XGService) *SeasonSummaryService {
	return &SeasonSummaryService{repos: repos, standings: standings, xg: xg}
}

// Summary runs the two aggregations and the season count concurrently; all
// three are reads.
func (s *SeasonSummaryService) Summary(ctx context.Context, seasonID int64) (SeasonSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonSummaryService.Summary")
	defer span.End()

	var (
		table []leaguestanding.Standing
		xg    []expectedgoals.Summary
		data  seasonData
	)

	p := pool.New().WithContext(ctx).WithCancelOnError()
	p.Go(func(ctx context.Context) error {
		var err error
		table, err = s.standings.Table(ctx, seasonID)
		return err
	})
	p.Go(func(ctx context.Context) error {
		var err error
		xg, err = s.xg.Summaries(ctx, seasonID)
		return err
	})
	p.Go(func(ctx context.Context) error {
		var err error
		data, err = s.repos.load(ctx, seasonID, seasonParts{shots: true})
		return err
	})
	if err := p.Wait(); err != nil {
		return SeasonSummary{}, fmt.Errorf("summarize season=%d: %w", seasonID, err)
	}

	out := SeasonSummary{
		SeasonID:    seasonID,
		Season:      data.season.Name,
		Competition: data.competition.Name,
		Leader:      noTeam,
		TopAttack:   TeamMetric{Team: noTeam},
		BestDefence: TeamMetric{Team: noTeam},
		Top:         headRows(table, summaryTopRows),
		Bottom:      tailRows(table, summaryBottomRows),
	}

	finished := make(map[int64]struct{}, len(data.matches))
	for _, m := range data.matches {
		if m.IsFinished() {
			finished[m.ID] = struct{}{}
		}
	}
	out.FinishedMatches = len(finished)
	for _, item := range data.shots {
		if _, ok := finished[item.MatchID]; ok && item.Prepared().IsGoal {
			out.Goals++
		}
	}
	if out.FinishedMatches > 0 {
		out.GoalsPerMatch = expectedgoals.Round2(float64(out.Goals) / float64(out.FinishedMatches))
	}

	if len(table) > 0 {
		out.Leader = table[0].TeamName
	}
	for i, row := range xg {
		if i == 0 || row.XGFor > out.TopAttack.Value {
			out.TopAttack = TeamMetric{Team: row.TeamName, Value: row.XGFor}
		}
		if i == 0 || row.XGAgainst < out.BestDefence.Value {
			out.BestDefence = TeamMetric{Team: row.TeamName, Value: row.XGAgainst}
		}
	}
	return out, nil
}

// ShotMap lists the season's shots, only teamID's when it is positive.
func (s *SeasonSummaryService) ShotMap(ctx context.Context, seasonID, teamID int64) ([]ShotPoint, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonSummaryService.ShotMap")
	defer span.End()

	if seasonID <= 0 {
		return nil, fmt.Errorf("%w: season id must be positive", ErrInvalidInput)
	}
	if _, ok, err := s.repos.Seasons.GetByID(ctx, seasonID); err != nil {
		return nil, fmt.Errorf("get season: %w", err)
	} else if !ok {
		return nil, fmt.Errorf("%w: season=%d", ErrNotFound, seasonID)
	}

	items, err := s.repos.Shots.ListBySeason(ctx, seasonID)
	if err != nil {
		return nil, fmt.Errorf("list shots: %w", err)
	}
	out := make([]ShotPoint, 0, len(items))
	for _, item := range items {
		if teamID > 0 && item.TeamID != teamID {
			continue
		}
		out = append(out, shotPoint(item))
	}
	return out, nil
}

func shotPoint(item shot.Shot) ShotPoint {
	return ShotPoint{
		TeamID:  item.TeamID,
		MatchID: item.MatchID,
		Minute:  item.Minute,
		X:       item.X,
		Y:       item.Y,
		XG:      item.XG,
		Outcome: item.Outcome,
	}
}

func headRows(rows []leaguestanding.Standing, n int) []leaguestanding.Standing {
	if len(rows) < n {
		n = len(rows)
	}
	return append([]leaguestanding.Standing(nil), rows[:n]...)
}

func tailRows(rows []leaguestanding.Standing, n int) []leaguestanding.Standing {
	if len(rows) < n {
		n = len(rows)
	}
	return append([]leaguestanding.Standing(nil), rows[len(rows)-n:]...)
}
