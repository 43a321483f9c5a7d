package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/futball/internal/domain/errs"
	"github.com/riskibarqy/futball/internal/domain/match"
	qb "github.com/riskibarqy/futball/internal/platform/querybuilder"
)

type MatchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) GetByID(ctx context.Context, id int64) (match.Match, bool, error) {
	return getMatch(ctx, r.db, qb.Eq("id", id), false)
}

func (r *MatchRepository) GetByMatchID(ctx context.Context, matchID string) (match.Match, bool, error) {
	return getMatch(ctx, r.db, qb.Eq("match_id", matchID), false)
}

func getMatch(ctx context.Context, q sqlx.QueryerContext, cond qb.Condition, forUpdate bool) (match.Match, bool, error) {
	query, args, err := qb.Select(matchColumns).From("matches").Where(cond).ToSQL()
	if err != nil {
		return match.Match{}, false, fmt.Errorf("build select match query: %w", err)
	}
	if forUpdate {
		query += " FOR UPDATE"
	}

	var row matchTableModel
	if err := sqlx.GetContext(ctx, q, &row, query, args...); err != nil {
		if isNotFound(err) {
			return match.Match{}, false, nil
		}
		return match.Match{}, false, fmt.Errorf("select match: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *MatchRepository) List(ctx context.Context) ([]match.Match, error) {
	return r.list(ctx)
}

func (r *MatchRepository) ListBySeason(ctx context.Context, seasonID int64) ([]match.Match, error) {
	return r.list(ctx, qb.Eq("season_id", seasonID))
}

func (r *MatchRepository) list(ctx context.Context, conds ...qb.Condition) ([]match.Match, error) {
	query, args, err := qb.Select(matchColumns).From("matches").Where(conds...).OrderBy("match_date DESC", "id").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select matches query: %w", err)
	}

	var rows []matchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select matches: %w", err)
	}

	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *MatchRepository) Create(ctx context.Context, item match.Match) (match.Match, error) {
	item.Status = match.NormalizeStatus(item.Status)
	if err := item.Validate(); err != nil {
		return match.Match{}, err
	}

	query, args, err := qb.InsertModel("matches", matchModelFrom(item), "RETURNING id")
	if err != nil {
		return match.Match{}, fmt.Errorf("build insert match query: %w", err)
	}
	if err := r.db.GetContext(ctx, &item.ID, query, args...); err != nil {
		return match.Match{}, classify(err, "insert match "+item.MatchID)
	}
	return item, nil
}

func (r *MatchRepository) Update(ctx context.Context, item match.Match) error {
	item.Status = match.NormalizeStatus(item.Status)
	if err := item.Validate(); err != nil {
		return err
	}

	row := matchModelFrom(item)
	query, args, err := qb.Update("matches").
		Set("match_id", row.MatchID).
		Set("season_id", row.SeasonID).
		Set("home_team_id", row.HomeTeamID).
		Set("away_team_id", row.AwayTeamID).
		Set("match_date", row.MatchDate).
		Set("status", row.Status).
		Set("home_score", row.HomeScore).
		Set("away_score", row.AwayScore).
		Set("home_shots", row.HomeShots).
		Set("away_shots", row.AwayShots).
		Set("home_shots_on_target", row.HomeShotsOnTarget).
		Set("away_shots_on_target", row.AwayShotsOnTarget).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", item.ID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update match query: %w", err)
	}

	affected, err := exec(ctx, r.db, "update match "+item.MatchID, query, args...)
	if err != nil {
		return err
	}
	if affected == 0 {
		return errs.NotFound("match=%d", item.ID)
	}
	return nil
}

const upsertTeamStatsSuffix = `ON CONFLICT (match_id, team_id) DO UPDATE SET
	xg = EXCLUDED.xg,
	shots = EXCLUDED.shots,
	shots_on_target = EXCLUDED.shots_on_target,
	updated_at = NOW()`

func (r *MatchRepository) UpsertTeamStats(ctx context.Context, items []match.TeamStats) error {
	if len(items) == 0 {
		return nil
	}

	return inTx(ctx, r.db, "upsert match team stats", func(tx *sqlx.Tx) error {
		matches := make(map[int64]match.Match)
		rows := make([]any, 0, len(items))
		for _, item := range items {
			m, ok := matches[item.MatchID]
			if !ok {
				var err error
				m, ok, err = getMatch(ctx, tx, qb.Eq("id", item.MatchID), true)
				if err != nil {
					return err
				}
				if !ok {
					return errs.Referential("match team stats: match=%d does not exist", item.MatchID)
				}
				matches[item.MatchID] = m
			}
			if err := item.ValidateFor(m); err != nil {
				return err
			}
			rows = append(rows, teamStatsTableModel{
				MatchID:       item.MatchID,
				TeamID:        item.TeamID,
				XG:            item.XG,
				Shots:         item.Shots,
				ShotsOnTarget: item.ShotsOnTarget,
			})
		}

		for start := 0; start < len(rows); start += insertChunkSize {
			end := min(start+insertChunkSize, len(rows))
			query, args, err := qb.InsertModels("match_team_stats", rows[start:end], upsertTeamStatsSuffix)
			if err != nil {
				return fmt.Errorf("build upsert match team stats query: %w", err)
			}
			if _, err := exec(ctx, tx, "upsert match team stats", query, args...); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *MatchRepository) ListTeamStatsBySeason(ctx context.Context, seasonID int64) ([]match.TeamStats, error) {
	query, args, err := qb.Select("ts.match_id", "ts.team_id", "ts.xg", "ts.shots", "ts.shots_on_target").
		From("match_team_stats ts").
		Join("JOIN matches m ON m.id = ts.match_id").
		Where(qb.Eq("m.season_id", seasonID)).
		OrderBy("ts.match_id", "ts.team_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select match team stats query: %w", err)
	}

	var rows []teamStatsTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select match team stats: %w", err)
	}

	out := make([]match.TeamStats, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}
