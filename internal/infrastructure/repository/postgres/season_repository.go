package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/futball/internal/domain/season"
	qb "github.com/riskibarqy/futball/internal/platform/querybuilder"
)

type SeasonRepository struct {
	db *sqlx.DB
}

func NewSeasonRepository(db *sqlx.DB) *SeasonRepository {
	return &SeasonRepository{db: db}
}

func (r *SeasonRepository) GetByID(ctx context.Context, id int64) (season.Season, bool, error) {
	rows, err := r.list(ctx, qb.Eq("id", id))
	if err != nil || len(rows) == 0 {
		return season.Season{}, false, err
	}
	return rows[0], true, nil
}

func (r *SeasonRepository) GetByCompetitionAndName(ctx context.Context, competitionID int64, name string) (season.Season, bool, error) {
	rows, err := r.list(ctx, qb.Eq("competition_id", competitionID), qb.Eq("name", name))
	if err != nil || len(rows) == 0 {
		return season.Season{}, false, err
	}
	return rows[0], true, nil
}

func (r *SeasonRepository) ListByCompetition(ctx context.Context, competitionID int64) ([]season.Season, error) {
	return r.list(ctx, qb.Eq("competition_id", competitionID))
}

func (r *SeasonRepository) List(ctx context.Context) ([]season.Season, error) {
	return r.list(ctx)
}

func (r *SeasonRepository) list(ctx context.Context, conds ...qb.Condition) ([]season.Season, error) {
	query, args, err := qb.Select("id", "competition_id", "name").From("seasons").Where(conds...).OrderBy("id").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select seasons query: %w", err)
	}

	var rows []seasonTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select seasons: %w", err)
	}

	out := make([]season.Season, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *SeasonRepository) Create(ctx context.Context, item season.Season) (season.Season, error) {
	if err := item.Validate(); err != nil {
		return season.Season{}, err
	}

	query, args, err := qb.InsertModel("seasons", seasonTableModel{CompetitionID: item.CompetitionID, Name: item.Name}, "RETURNING id")
	if err != nil {
		return season.Season{}, fmt.Errorf("build insert season query: %w", err)
	}
	if err := r.db.GetContext(ctx, &item.ID, query, args...); err != nil {
		return season.Season{}, classify(err, "insert season")
	}
	return item, nil
}

// CheckMerge reports the error Merge would return without changing anything.
func (r *SeasonRepository) CheckMerge(ctx context.Context, sourceID, targetID int64) error {
	return checkTx(ctx, r.db, fmt.Sprintf("merge season=%d into season=%d", sourceID, targetID), func(tx *sqlx.Tx) error {
		return lockRows(ctx, tx, "seasons", sourceID, targetID)
	})
}

func (r *SeasonRepository) Merge(ctx context.Context, sourceID, targetID int64) error {
	return inTx(ctx, r.db, fmt.Sprintf("merge season=%d into season=%d", sourceID, targetID), func(tx *sqlx.Tx) error {
		if err := lockRows(ctx, tx, "seasons", sourceID, targetID); err != nil {
			return err
		}
		if sourceID == targetID {
			return nil
		}

		query, args, err := qb.Update("matches").
			Set("season_id", targetID).
			SetExpr("updated_at", "NOW()").
			Where(qb.Eq("season_id", sourceID)).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build repoint matches query: %w", err)
		}
		if _, err := exec(ctx, tx, "repoint matches", query, args...); err != nil {
			return err
		}
		return deleteByID(ctx, tx, "seasons", sourceID)
	})
}
