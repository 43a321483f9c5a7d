package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/futball/internal/domain/competition"
	"github.com/riskibarqy/futball/internal/domain/match"
	"github.com/riskibarqy/futball/internal/domain/season"
	"github.com/riskibarqy/futball/internal/domain/shot"
	"github.com/riskibarqy/futball/internal/domain/team"
)

const (
	DemoCompetitionName = "Premier League"
	DemoSeasonName      = "2024/2025"
)

type demoMatch struct {
	matchID   string
	date      string
	home      string
	away      string
	homeScore int
	awayScore int
	shots     []demoShot
}

type demoShot struct {
	away bool
	shot shot.Shot
}

func demoMatches() []demoMatch {
	return []demoMatch{
		{
			matchID: "demo-1", date: "2024-08-17", home: "Arsenal", away: "Wolverhampton Wanderers", homeScore: 2, awayScore: 0,
			shots: []demoShot{
				{shot: shot.Shot{Minute: 25, X: 108, Y: 38, XG: 0.41, Outcome: shot.OutcomeGoal, BodyPart: shot.BodyPartHead, ShotType: shot.TypeOpenPlay}},
				{shot: shot.Shot{Minute: 74, X: 104, Y: 44, XG: 0.18, Outcome: shot.OutcomeGoal, BodyPart: shot.BodyPartLeftFoot, ShotType: shot.TypeOpenPlay}},
				{away: true, shot: shot.Shot{Minute: 81, X: 95, Y: 30, XG: 0.06, Outcome: shot.OutcomeSaved, BodyPart: shot.BodyPartRightFoot, ShotType: shot.TypeOpenPlay}},
			},
		},
		{
			matchID: "demo-2", date: "2024-08-24", home: "Liverpool", away: "Arsenal", homeScore: 1, awayScore: 1,
			shots: []demoShot{
				{shot: shot.Shot{Minute: 12, X: 108, Y: 40, XG: 0.76, Outcome: shot.OutcomeGoal, BodyPart: shot.BodyPartRightFoot, ShotType: shot.TypePenalty}},
				{away: true, shot: shot.Shot{Minute: 63, X: 110, Y: 35, XG: 0.32, Outcome: shot.OutcomeGoal, BodyPart: shot.BodyPartRightFoot, ShotType: shot.TypeOpenPlay}},
			},
		},
		{
			matchID: "demo-3", date: "2024-08-31", home: "Wolverhampton Wanderers", away: "Liverpool", homeScore: 0, awayScore: 3,
		},
	}
}

// SeedDemo loads a small finished season so the API has something to serve
// without a database.
func SeedDemo(ctx context.Context, store *Store) error {
	comp, err := store.Competitions().Create(ctx, competition.Competition{Name: DemoCompetitionName, Country: "England"})
	if err != nil {
		return fmt.Errorf("seed competition: %w", err)
	}
	ssn, err := store.Seasons().Create(ctx, season.Season{CompetitionID: comp.ID, Name: DemoSeasonName})
	if err != nil {
		return fmt.Errorf("seed season: %w", err)
	}

	teamIDs := make(map[string]int64)
	for _, name := range []string{"Arsenal", "Liverpool", "Wolverhampton Wanderers"} {
		item, err := store.Teams().Create(ctx, team.Team{Name: name, Country: "England"})
		if err != nil {
			return fmt.Errorf("seed team %s: %w", name, err)
		}
		teamIDs[name] = item.ID
	}

	for _, row := range demoMatches() {
		date, err := time.Parse(time.DateOnly, row.date)
		if err != nil {
			return fmt.Errorf("parse seed date %s: %w", row.date, err)
		}
		homeScore, awayScore := row.homeScore, row.awayScore
		m, err := store.Matches().Create(ctx, match.Match{
			MatchID:    row.matchID,
			SeasonID:   ssn.ID,
			HomeTeamID: teamIDs[row.home],
			AwayTeamID: teamIDs[row.away],
			MatchDate:  date,
			Status:     match.StatusFinished,
			HomeScore:  &homeScore,
			AwayScore:  &awayScore,
		})
		if err != nil {
			return fmt.Errorf("seed match %s: %w", row.matchID, err)
		}

		shots := make([]shot.Shot, 0, len(row.shots))
		for _, row := range row.shots {
			item := row.shot
			item.MatchID = m.ID
			item.TeamID = m.HomeTeamID
			if row.away {
				item.TeamID = m.AwayTeamID
			}
			shots = append(shots, item)
		}
		if len(shots) == 0 {
			continue
		}
		if _, err := store.Shots().InsertBatch(ctx, m.ID, shots); err != nil {
			return fmt.Errorf("seed shots %s: %w", row.matchID, err)
		}
	}
	return nil
}
