package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/futball/internal/domain/leaguestanding"
	"github.com/riskibarqy/futball/internal/domain/match"
	"github.com/riskibarqy/futball/internal/domain/shot"
)

func finished(id, home, away int64, homeScore, awayScore *int) match.Match {
	return match.Match{
		ID: id, MatchID: "m", HomeTeamID: home, AwayTeamID: away,
		MatchDate: time.Date(2024, 1, int(id), 0, 0, 0, 0, time.UTC),
		Status:    match.StatusFinished, HomeScore: homeScore, AwayScore: awayScore,
	}
}

func TestBuildTable(t *testing.T) {
	t.Parallel()

	names := map[int64]string{1: "Alpha", 2: "Bravo", 3: "Charlie", 4: "Delta"}

	t.Run("score takes precedence over goal shots", func(t *testing.T) {
		matches := []match.Match{finished(1, 1, 2, intPtr(0), intPtr(1))}
		shots := []shot.Shot{
			{MatchID: 1, TeamID: 1, Outcome: shot.OutcomeGoal},
			{MatchID: 1, TeamID: 1, Outcome: shot.OutcomeGoal},
		}

		rows := BuildTable(matches, shots, names)
		if rows[0].TeamName != "Bravo" || rows[0].Points != 3 {
			t.Fatalf("unexpected leader: %+v", rows[0])
		}
		if rows[1].GoalsFor != 0 {
			t.Fatalf("shots must not override the score: %+v", rows[1])
		}
	})

	t.Run("goal shots used without a score", func(t *testing.T) {
		matches := []match.Match{finished(1, 1, 2, nil, nil)}
		shots := []shot.Shot{
			{MatchID: 1, TeamID: 1, Outcome: shot.OutcomeGoal},
			{MatchID: 1, TeamID: 1, Outcome: shot.OutcomeSaved, IsGoal: true},
			{MatchID: 1, TeamID: 2, Outcome: shot.OutcomeGoal},
		}

		rows := BuildTable(matches, shots, names)
		for _, row := range rows {
			if row.Points != 1 || row.Draw != 1 || row.GoalsFor != 1 {
				t.Fatalf("expected a 1-1 draw, got %+v", row)
			}
		}
	})

	t.Run("unfinished matches and idle teams are left out", func(t *testing.T) {
		scheduled := finished(2, 3, 4, nil, nil)
		scheduled.Status = match.StatusScheduled
		matches := []match.Match{finished(1, 1, 2, intPtr(2), intPtr(2)), scheduled}

		rows := BuildTable(matches, nil, names)
		if len(rows) != 2 {
			t.Fatalf("unexpected row count: got=%d want=2", len(rows))
		}
	})

	t.Run("orders by points then goal difference then goals for", func(t *testing.T) {
		matches := []match.Match{
			finished(1, 1, 4, intPtr(1), intPtr(0)),
			finished(2, 2, 4, intPtr(3), intPtr(2)),
			finished(3, 3, 4, intPtr(2), intPtr(0)),
		}

		rows := BuildTable(matches, nil, names)
		got := []string{rows[0].TeamName, rows[1].TeamName, rows[2].TeamName, rows[3].TeamName}
		want := []string{"Charlie", "Bravo", "Alpha", "Delta"}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("unexpected order: got=%v want=%v", got, want)
			}
		}
		if rows[3].Position != 4 || rows[3].Lost != 3 {
			t.Fatalf("unexpected bottom row: %+v", rows[3])
		}
	})
}

func TestStandingsService_Table(t *testing.T) {
	t.Parallel()

	store, repos := newTestStore(t, true)
	rows, err := NewStandingsService(repos).Table(context.Background(), demoSeasonID(t, store))
	if err != nil {
		t.Fatalf("standings table: %v", err)
	}

	want := []leaguestanding.Standing{
		{TeamName: "Liverpool", Position: 1, Played: 2, Won: 1, Draw: 1, GoalsFor: 4, GoalsAgainst: 1, GoalDifference: 3, Points: 4, Zone: leaguestanding.ZoneChampionsLeague},
		{TeamName: "Arsenal", Position: 2, Played: 2, Won: 1, Draw: 1, GoalsFor: 3, GoalsAgainst: 1, GoalDifference: 2, Points: 4, Zone: leaguestanding.ZoneChampionsLeague},
		{TeamName: "Wolverhampton Wanderers", Position: 3, Played: 2, Lost: 2, GoalsFor: 0, GoalsAgainst: 5, GoalDifference: -5, Points: 0, Zone: leaguestanding.ZoneChampionsLeague},
	}
	if len(rows) != len(want) {
		t.Fatalf("unexpected row count: got=%d want=%d", len(rows), len(want))
	}
	for i := range want {
		got := rows[i]
		got.TeamID = 0
		if got != want[i] {
			t.Fatalf("row %d: got=%+v want=%+v", i, got, want[i])
		}
	}

	if _, err := NewStandingsService(repos).Table(context.Background(), 9999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
