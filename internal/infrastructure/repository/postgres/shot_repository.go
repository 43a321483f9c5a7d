package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/futball/internal/domain/errs"
	"github.com/riskibarqy/futball/internal/domain/shot"
	qb "github.com/riskibarqy/futball/internal/platform/querybuilder"
)

type ShotRepository struct {
	db *sqlx.DB
}

func NewShotRepository(db *sqlx.DB) *ShotRepository {
	return &ShotRepository{db: db}
}

func (r *ShotRepository) ListByMatch(ctx context.Context, matchID int64) ([]shot.Shot, error) {
	return r.list(ctx, qb.Select(shotColumns).From("shots s").
		Where(qb.Eq("s.match_id", matchID)).
		OrderBy("s.minute", "s.second", "s.id"))
}

func (r *ShotRepository) ListBySeason(ctx context.Context, seasonID int64) ([]shot.Shot, error) {
	return r.list(ctx, qb.Select(shotColumns).From("shots s").
		Join("JOIN matches m ON m.id = s.match_id").
		Where(qb.Eq("m.season_id", seasonID)).
		OrderBy("s.id"))
}

func (r *ShotRepository) list(ctx context.Context, b *qb.SelectBuilder) ([]shot.Shot, error) {
	query, args, err := b.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select shots query: %w", err)
	}

	var rows []shotTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select shots: %w", err)
	}

	out := make([]shot.Shot, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *ShotRepository) CountByMatch(ctx context.Context, matchID int64) (int, error) {
	query, args, err := qb.Select("COUNT(*)").From("shots").Where(qb.Eq("match_id", matchID)).ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count shots query: %w", err)
	}

	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("count shots: %w", err)
	}
	return count, nil
}

func (r *ShotRepository) InsertBatch(ctx context.Context, matchID int64, items []shot.Shot) (int, error) {
	return r.write(ctx, matchID, items, false)
}

func (r *ShotRepository) ReplaceByMatch(ctx context.Context, matchID int64, items []shot.Shot) (int, error) {
	return r.write(ctx, matchID, items, true)
}

func (r *ShotRepository) write(ctx context.Context, matchID int64, items []shot.Shot, replace bool) (int, error) {
	inserted := 0
	err := inTx(ctx, r.db, fmt.Sprintf("insert shots for match=%d", matchID), func(tx *sqlx.Tx) error {
		m, ok, err := getMatch(ctx, tx, qb.Eq("id", matchID), true)
		if err != nil {
			return err
		}
		if !ok {
			return errs.Referential("shots: match=%d does not exist", matchID)
		}

		rows := make([]any, 0, len(items))
		for i, item := range items {
			item = item.Prepared()
			if err := item.ValidateFor(m.ID, m.HomeTeamID, m.AwayTeamID); err != nil {
				return fmt.Errorf("row %d: %w", i, err)
			}
			rows = append(rows, shotModelFrom(item))
		}

		if replace {
			query, args, err := qb.DeleteFrom("shots").Where(qb.Eq("match_id", matchID)).ToSQL()
			if err != nil {
				return fmt.Errorf("build delete shots query: %w", err)
			}
			if _, err := exec(ctx, tx, "delete shots", query, args...); err != nil {
				return err
			}
		}

		for start := 0; start < len(rows); start += insertChunkSize {
			end := min(start+insertChunkSize, len(rows))
			query, args, err := qb.InsertModels("shots", rows[start:end], "")
			if err != nil {
				return fmt.Errorf("build insert shots query: %w", err)
			}
			affected, err := exec(ctx, tx, "insert shots", query, args...)
			if err != nil {
				return err
			}
			inserted += int(affected)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return inserted, nil
}
