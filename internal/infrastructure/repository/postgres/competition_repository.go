package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/futball/internal/domain/competition"
	"github.com/riskibarqy/futball/internal/domain/errs"
	qb "github.com/riskibarqy/futball/internal/platform/querybuilder"
)

type CompetitionRepository struct {
	db *sqlx.DB
}

func NewCompetitionRepository(db *sqlx.DB) *CompetitionRepository {
	return &CompetitionRepository{db: db}
}

func (r *CompetitionRepository) GetByID(ctx context.Context, id int64) (competition.Competition, bool, error) {
	return r.getOne(ctx, qb.Eq("id", id))
}

func (r *CompetitionRepository) GetByName(ctx context.Context, name string) (competition.Competition, bool, error) {
	return r.getOne(ctx, qb.Eq("name", name))
}

func (r *CompetitionRepository) getOne(ctx context.Context, cond qb.Condition) (competition.Competition, bool, error) {
	query, args, err := qb.Select("id", "name", "country").From("competitions").Where(cond).ToSQL()
	if err != nil {
		return competition.Competition{}, false, fmt.Errorf("build select competition query: %w", err)
	}

	var row competitionTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return competition.Competition{}, false, nil
		}
		return competition.Competition{}, false, fmt.Errorf("select competition: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *CompetitionRepository) List(ctx context.Context) ([]competition.Competition, error) {
	query, args, err := qb.Select("id", "name", "country").From("competitions").OrderBy("id").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select competitions query: %w", err)
	}

	var rows []competitionTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select competitions: %w", err)
	}

	out := make([]competition.Competition, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *CompetitionRepository) Create(ctx context.Context, item competition.Competition) (competition.Competition, error) {
	if err := item.Validate(); err != nil {
		return competition.Competition{}, err
	}

	query, args, err := qb.InsertModel("competitions", competitionTableModel{Name: item.Name, Country: item.Country}, "RETURNING id")
	if err != nil {
		return competition.Competition{}, fmt.Errorf("build insert competition query: %w", err)
	}
	if err := r.db.GetContext(ctx, &item.ID, query, args...); err != nil {
		return competition.Competition{}, classify(err, "insert competition")
	}
	return item, nil
}

const (
	repointFoldedSeasonMatches = `
UPDATE matches m
SET season_id = t.id, updated_at = NOW()
FROM seasons s
JOIN seasons t ON t.name = s.name AND t.competition_id = $2
WHERE m.season_id = s.id
  AND s.competition_id = $1`

	deleteFoldedSeasons = `
DELETE FROM seasons s
USING seasons t
WHERE s.competition_id = $1
  AND t.competition_id = $2
  AND t.name = s.name`
)

// CheckMerge reports the error Merge would return without changing anything.
func (r *CompetitionRepository) CheckMerge(ctx context.Context, sourceID, targetID int64) error {
	return checkTx(ctx, r.db, fmt.Sprintf("merge competition=%d into competition=%d", sourceID, targetID), func(tx *sqlx.Tx) error {
		return lockRows(ctx, tx, "competitions", sourceID, targetID)
	})
}

func (r *CompetitionRepository) Merge(ctx context.Context, sourceID, targetID int64) error {
	return inTx(ctx, r.db, fmt.Sprintf("merge competition=%d into competition=%d", sourceID, targetID), func(tx *sqlx.Tx) error {
		if err := lockRows(ctx, tx, "competitions", sourceID, targetID); err != nil {
			return err
		}
		if sourceID == targetID {
			return nil
		}

		if _, err := exec(ctx, tx, "repoint folded season matches", repointFoldedSeasonMatches, sourceID, targetID); err != nil {
			return err
		}
		if _, err := exec(ctx, tx, "delete folded seasons", deleteFoldedSeasons, sourceID, targetID); err != nil {
			return err
		}

		query, args, err := qb.Update("seasons").
			Set("competition_id", targetID).
			SetExpr("updated_at", "NOW()").
			Where(qb.Eq("competition_id", sourceID)).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build repoint seasons query: %w", err)
		}
		if _, err := exec(ctx, tx, "repoint seasons", query, args...); err != nil {
			return err
		}

		return deleteByID(ctx, tx, "competitions", sourceID)
	})
}

// lockRows takes row locks on every id and fails with errs.ErrNotFound when
// one of them is missing.
func lockRows(ctx context.Context, tx *sqlx.Tx, table string, ids ...int64) error {
	for _, id := range ids {
		var found int64
		query := fmt.Sprintf("SELECT id FROM %s WHERE id = $1 FOR UPDATE", table)
		if err := tx.GetContext(ctx, &found, query, id); err != nil {
			if isNotFound(err) {
				return errs.NotFound("%s id=%d", table, id)
			}
			return fmt.Errorf("lock %s id=%d: %w", table, id, err)
		}
	}
	return nil
}

func deleteByID(ctx context.Context, tx *sqlx.Tx, table string, id int64) error {
	query, args, err := qb.DeleteFrom(table).Where(qb.Eq("id", id)).ToSQL()
	if err != nil {
		return fmt.Errorf("build delete %s query: %w", table, err)
	}
	_, err = exec(ctx, tx, "delete "+table, query, args...)
	return err
}
