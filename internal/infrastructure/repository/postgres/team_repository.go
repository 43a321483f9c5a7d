package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/futball/internal/domain/errs"
	"github.com/riskibarqy/futball/internal/domain/team"
	qb "github.com/riskibarqy/futball/internal/platform/querybuilder"
)

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) GetByID(ctx context.Context, id int64) (team.Team, bool, error) {
	rows, err := r.list(ctx, qb.Eq("id", id))
	if err != nil || len(rows) == 0 {
		return team.Team{}, false, err
	}
	return rows[0], true, nil
}

func (r *TeamRepository) GetByName(ctx context.Context, name string) (team.Team, bool, error) {
	rows, err := r.list(ctx, qb.Eq("name", name))
	if err != nil || len(rows) == 0 {
		return team.Team{}, false, err
	}
	return rows[0], true, nil
}

func (r *TeamRepository) List(ctx context.Context) ([]team.Team, error) {
	return r.list(ctx)
}

func (r *TeamRepository) list(ctx context.Context, conds ...qb.Condition) ([]team.Team, error) {
	query, args, err := qb.Select("id", "name", "country").From("teams").Where(conds...).OrderBy("id").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select teams query: %w", err)
	}

	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select teams: %w", err)
	}

	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *TeamRepository) Create(ctx context.Context, item team.Team) (team.Team, error) {
	if err := item.Validate(); err != nil {
		return team.Team{}, err
	}

	query, args, err := qb.InsertModel("teams", teamTableModel{Name: item.Name, Country: item.Country}, "RETURNING id")
	if err != nil {
		return team.Team{}, fmt.Errorf("build insert team query: %w", err)
	}
	if err := r.db.GetContext(ctx, &item.ID, query, args...); err != nil {
		return team.Team{}, classify(err, "insert team")
	}
	return item, nil
}

const selectSameSidedMatch = `
SELECT match_id
FROM matches
WHERE (home_team_id = $1 AND away_team_id = $2)
   OR (home_team_id = $2 AND away_team_id = $1)
LIMIT 1`

// teamReferences lists every column that points at teams.id and is repointed
// by a merge.
var teamReferences = []struct {
	table  string
	column string
}{
	{"matches", "home_team_id"},
	{"matches", "away_team_id"},
	{"match_team_stats", "team_id"},
	{"shots", "team_id"},
	{"players", "team_id"},
	{"player_appearances", "team_id"},
}

// CheckMerge reports the error Merge would return without changing anything.
func (r *TeamRepository) CheckMerge(ctx context.Context, sourceID, targetID int64) error {
	return checkTx(ctx, r.db, fmt.Sprintf("merge team=%d into team=%d", sourceID, targetID), func(tx *sqlx.Tx) error {
		return checkTeamMerge(ctx, tx, sourceID, targetID)
	})
}

func checkTeamMerge(ctx context.Context, tx *sqlx.Tx, sourceID, targetID int64) error {
	if err := lockRows(ctx, tx, "teams", sourceID, targetID); err != nil {
		return err
	}
	if sourceID == targetID {
		return nil
	}

	var clash []string
	if err := tx.SelectContext(ctx, &clash, selectSameSidedMatch, sourceID, targetID); err != nil {
		return fmt.Errorf("select same sided matches: %w", err)
	}
	if len(clash) > 0 {
		return errs.Referential("match %s would have team=%d on both sides", clash[0], targetID)
	}
	return nil
}

func (r *TeamRepository) Merge(ctx context.Context, sourceID, targetID int64) error {
	return inTx(ctx, r.db, fmt.Sprintf("merge team=%d into team=%d", sourceID, targetID), func(tx *sqlx.Tx) error {
		if err := checkTeamMerge(ctx, tx, sourceID, targetID); err != nil {
			return err
		}
		if sourceID == targetID {
			return nil
		}

		for _, ref := range teamReferences {
			query, args, err := qb.Update(ref.table).Set(ref.column, targetID).Where(qb.Eq(ref.column, sourceID)).ToSQL()
			if err != nil {
				return fmt.Errorf("build repoint %s.%s query: %w", ref.table, ref.column, err)
			}
			if _, err := exec(ctx, tx, "repoint "+ref.table+"."+ref.column, query, args...); err != nil {
				return err
			}
		}
		return deleteByID(ctx, tx, "teams", sourceID)
	})
}
