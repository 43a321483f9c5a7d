package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/futball/internal/domain/player"
	qb "github.com/riskibarqy/futball/internal/platform/querybuilder"
)

type PlayerRepository struct {
	db *sqlx.DB
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) GetByExternalID(ctx context.Context, externalID string) (player.Player, bool, error) {
	query, args, err := qb.Select("id", "external_id", "name", "team_id", "position").
		From("players").
		Where(qb.Eq("external_id", externalID)).
		ToSQL()
	if err != nil {
		return player.Player{}, false, fmt.Errorf("build select player query: %w", err)
	}

	var row playerTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return player.Player{}, false, nil
		}
		return player.Player{}, false, fmt.Errorf("select player: %w", err)
	}
	return row.toDomain(), true, nil
}

// xmax is zero only for rows created by this statement.
const upsertPlayerSuffix = `ON CONFLICT (external_id) DO UPDATE SET
	name = EXCLUDED.name,
	team_id = EXCLUDED.team_id,
	position = EXCLUDED.position,
	updated_at = NOW()
RETURNING id, (xmax = 0) AS created`

func (r *PlayerRepository) Upsert(ctx context.Context, item player.Player) (player.Player, bool, error) {
	if err := item.Validate(); err != nil {
		return player.Player{}, false, err
	}

	row := playerTableModel{
		ExternalID: item.ExternalID,
		Name:       item.Name,
		TeamID:     zeroToNull(item.TeamID),
		Position:   item.Position,
	}
	query, args, err := qb.InsertModel("players", row, upsertPlayerSuffix)
	if err != nil {
		return player.Player{}, false, fmt.Errorf("build upsert player query: %w", err)
	}

	var result struct {
		ID      int64 `db:"id"`
		Created bool  `db:"created"`
	}
	if err := r.db.GetContext(ctx, &result, query, args...); err != nil {
		return player.Player{}, false, classify(err, "upsert player "+item.ExternalID)
	}
	item.ID = result.ID
	return item, result.Created, nil
}

const upsertAppearanceSuffix = `ON CONFLICT (player_id, match_id) DO UPDATE SET
	team_id = EXCLUDED.team_id,
	is_starter = EXCLUDED.is_starter,
	minute_on = EXCLUDED.minute_on,
	minute_off = EXCLUDED.minute_off
RETURNING (xmax = 0) AS created`

// Membership of the team in the match is enforced by the
// player_appearances_team_in_match trigger.
func (r *PlayerRepository) UpsertAppearance(ctx context.Context, item player.Appearance) (bool, error) {
	if err := item.Validate(); err != nil {
		return false, err
	}

	query, args, err := qb.InsertModel("player_appearances", appearanceTableModel{
		PlayerID:  item.PlayerID,
		MatchID:   item.MatchID,
		TeamID:    item.TeamID,
		IsStarter: item.IsStarter,
		MinuteOn:  item.MinuteOn,
		MinuteOff: item.MinuteOff,
	}, upsertAppearanceSuffix)
	if err != nil {
		return false, fmt.Errorf("build upsert appearance query: %w", err)
	}

	var created bool
	if err := r.db.GetContext(ctx, &created, query, args...); err != nil {
		return false, classify(err, "upsert appearance")
	}
	return created, nil
}

func (r *PlayerRepository) ListAppearancesByMatch(ctx context.Context, matchID int64) ([]player.Appearance, error) {
	query, args, err := qb.Select("player_id", "match_id", "team_id", "is_starter", "minute_on", "minute_off").
		From("player_appearances").
		Where(qb.Eq("match_id", matchID)).
		OrderBy("team_id", "player_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select appearances query: %w", err)
	}

	var rows []appearanceTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select appearances: %w", err)
	}

	out := make([]player.Appearance, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}
