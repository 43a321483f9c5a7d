package postgres

import (
	"database/sql"
	"time"

	"github.com/riskibarqy/futball/internal/domain/competition"
	"github.com/riskibarqy/futball/internal/domain/match"
	"github.com/riskibarqy/futball/internal/domain/player"
	"github.com/riskibarqy/futball/internal/domain/season"
	"github.com/riskibarqy/futball/internal/domain/shot"
	"github.com/riskibarqy/futball/internal/domain/team"
)

type competitionTableModel struct {
	ID      int64  `db:"id,readonly"`
	Name    string `db:"name"`
	Country string `db:"country"`
}

func (m competitionTableModel) toDomain() competition.Competition {
	return competition.Competition{ID: m.ID, Name: m.Name, Country: m.Country}
}

type seasonTableModel struct {
	ID            int64  `db:"id,readonly"`
	CompetitionID int64  `db:"competition_id"`
	Name          string `db:"name"`
}

func (m seasonTableModel) toDomain() season.Season {
	return season.Season{ID: m.ID, CompetitionID: m.CompetitionID, Name: m.Name}
}

type teamTableModel struct {
	ID      int64  `db:"id,readonly"`
	Name    string `db:"name"`
	Country string `db:"country"`
}

func (m teamTableModel) toDomain() team.Team {
	return team.Team{ID: m.ID, Name: m.Name, Country: m.Country}
}

type matchTableModel struct {
	ID                int64         `db:"id,readonly"`
	MatchID           string        `db:"match_id"`
	SeasonID          int64         `db:"season_id"`
	HomeTeamID        int64         `db:"home_team_id"`
	AwayTeamID        int64         `db:"away_team_id"`
	MatchDate         time.Time     `db:"match_date"`
	Status            string        `db:"status"`
	HomeScore         sql.NullInt32 `db:"home_score"`
	AwayScore         sql.NullInt32 `db:"away_score"`
	HomeShots         sql.NullInt32 `db:"home_shots"`
	AwayShots         sql.NullInt32 `db:"away_shots"`
	HomeShotsOnTarget sql.NullInt32 `db:"home_shots_on_target"`
	AwayShotsOnTarget sql.NullInt32 `db:"away_shots_on_target"`
}

const matchColumns = "id, match_id, season_id, home_team_id, away_team_id, match_date, status, " +
	"home_score, away_score, home_shots, away_shots, home_shots_on_target, away_shots_on_target"

func matchModelFrom(m match.Match) matchTableModel {
	return matchTableModel{
		ID:                m.ID,
		MatchID:           m.MatchID,
		SeasonID:          m.SeasonID,
		HomeTeamID:        m.HomeTeamID,
		AwayTeamID:        m.AwayTeamID,
		MatchDate:         m.MatchDate,
		Status:            m.Status,
		HomeScore:         intPtrToNull(m.HomeScore),
		AwayScore:         intPtrToNull(m.AwayScore),
		HomeShots:         intPtrToNull(m.HomeShots),
		AwayShots:         intPtrToNull(m.AwayShots),
		HomeShotsOnTarget: intPtrToNull(m.HomeShotsOnTarget),
		AwayShotsOnTarget: intPtrToNull(m.AwayShotsOnTarget),
	}
}

func (m matchTableModel) toDomain() match.Match {
	return match.Match{
		ID:                m.ID,
		MatchID:           m.MatchID,
		SeasonID:          m.SeasonID,
		HomeTeamID:        m.HomeTeamID,
		AwayTeamID:        m.AwayTeamID,
		MatchDate:         m.MatchDate.UTC(),
		Status:            m.Status,
		HomeScore:         nullToIntPtr(m.HomeScore),
		AwayScore:         nullToIntPtr(m.AwayScore),
		HomeShots:         nullToIntPtr(m.HomeShots),
		AwayShots:         nullToIntPtr(m.AwayShots),
		HomeShotsOnTarget: nullToIntPtr(m.HomeShotsOnTarget),
		AwayShotsOnTarget: nullToIntPtr(m.AwayShotsOnTarget),
	}
}

type teamStatsTableModel struct {
	MatchID       int64   `db:"match_id"`
	TeamID        int64   `db:"team_id"`
	XG            float64 `db:"xg"`
	Shots         int     `db:"shots"`
	ShotsOnTarget int     `db:"shots_on_target"`
}

func (m teamStatsTableModel) toDomain() match.TeamStats {
	return match.TeamStats{MatchID: m.MatchID, TeamID: m.TeamID, XG: m.XG, Shots: m.Shots, ShotsOnTarget: m.ShotsOnTarget}
}

type shotTableModel struct {
	ID       int64         `db:"id,readonly"`
	MatchID  int64         `db:"match_id"`
	TeamID   int64         `db:"team_id"`
	PlayerID sql.NullInt64 `db:"player_id"`
	Minute   int           `db:"minute"`
	Second   int           `db:"second"`
	X        float64       `db:"x"`
	Y        float64       `db:"y"`
	XG       float64       `db:"xg"`
	Outcome  string        `db:"outcome"`
	IsGoal   bool          `db:"is_goal"`
	BodyPart string        `db:"body_part"`
	ShotType string        `db:"shot_type"`
}

const shotColumns = "s.id, s.match_id, s.team_id, s.player_id, s.minute, s.second, s.x, s.y, s.xg, s.outcome, s.is_goal, s.body_part, s.shot_type"

func shotModelFrom(s shot.Shot) shotTableModel {
	return shotTableModel{
		MatchID:  s.MatchID,
		TeamID:   s.TeamID,
		PlayerID: int64PtrToNull(s.PlayerID),
		Minute:   s.Minute,
		Second:   s.Second,
		X:        s.X,
		Y:        s.Y,
		XG:       s.XG,
		Outcome:  s.Outcome,
		IsGoal:   s.IsGoal,
		BodyPart: s.BodyPart,
		ShotType: s.ShotType,
	}
}

func (m shotTableModel) toDomain() shot.Shot {
	return shot.Shot{
		ID:       m.ID,
		MatchID:  m.MatchID,
		TeamID:   m.TeamID,
		PlayerID: nullToInt64Ptr(m.PlayerID),
		Minute:   m.Minute,
		Second:   m.Second,
		X:        m.X,
		Y:        m.Y,
		XG:       m.XG,
		Outcome:  m.Outcome,
		IsGoal:   m.IsGoal,
		BodyPart: m.BodyPart,
		ShotType: m.ShotType,
	}
}

type playerTableModel struct {
	ID         int64         `db:"id,readonly"`
	ExternalID string        `db:"external_id"`
	Name       string        `db:"name"`
	TeamID     sql.NullInt64 `db:"team_id"`
	Position   string        `db:"position"`
}

func (m playerTableModel) toDomain() player.Player {
	return player.Player{ID: m.ID, ExternalID: m.ExternalID, Name: m.Name, TeamID: m.TeamID.Int64, Position: m.Position}
}

type appearanceTableModel struct {
	PlayerID  int64 `db:"player_id"`
	MatchID   int64 `db:"match_id"`
	TeamID    int64 `db:"team_id"`
	IsStarter bool  `db:"is_starter"`
	MinuteOn  int   `db:"minute_on"`
	MinuteOff int   `db:"minute_off"`
}

func (m appearanceTableModel) toDomain() player.Appearance {
	return player.Appearance{
		PlayerID:  m.PlayerID,
		MatchID:   m.MatchID,
		TeamID:    m.TeamID,
		IsStarter: m.IsStarter,
		MinuteOn:  m.MinuteOn,
		MinuteOff: m.MinuteOff,
	}
}
