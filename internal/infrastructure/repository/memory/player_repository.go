package memory

import (
	"context"
	"sort"

	"github.com/riskibarqy/futball/internal/domain/errs"
	"github.com/riskibarqy/futball/internal/domain/player"
)

type PlayerRepository struct {
	store *Store
}

func (r *PlayerRepository) GetByExternalID(_ context.Context, externalID string) (player.Player, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	item, ok := r.findByExternalID(externalID)
	return item, ok, nil
}

func (r *PlayerRepository) Upsert(_ context.Context, item player.Player) (player.Player, bool, error) {
	if err := item.Validate(); err != nil {
		return player.Player{}, false, err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if item.TeamID > 0 {
		if _, ok := r.store.teams[item.TeamID]; !ok {
			return player.Player{}, false, errs.Referential("player %s: team=%d does not exist", item.ExternalID, item.TeamID)
		}
	}

	if existing, ok := r.findByExternalID(item.ExternalID); ok {
		item.ID = existing.ID
		r.store.players[item.ID] = item
		return item, false, nil
	}
	item.ID = r.store.allocID()
	r.store.players[item.ID] = item
	return item, true, nil
}

func (r *PlayerRepository) UpsertAppearance(_ context.Context, item player.Appearance) (bool, error) {
	if err := item.Validate(); err != nil {
		return false, err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.players[item.PlayerID]; !ok {
		return false, errs.Referential("appearance: player=%d does not exist", item.PlayerID)
	}
	m, ok := r.store.matches[item.MatchID]
	if !ok {
		return false, errs.Referential("appearance: match=%d does not exist", item.MatchID)
	}
	if !m.Involves(item.TeamID) {
		return false, errs.Referential("appearance: team=%d does not play in match %s", item.TeamID, m.MatchID)
	}

	key := appearanceKey{playerID: item.PlayerID, matchID: item.MatchID}
	_, existed := r.store.appearances[key]
	r.store.appearances[key] = item
	return !existed, nil
}

func (r *PlayerRepository) ListAppearancesByMatch(_ context.Context, matchID int64) ([]player.Appearance, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]player.Appearance, 0)
	for _, item := range r.store.appearances {
		if item.MatchID == matchID {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TeamID != out[j].TeamID {
			return out[i].TeamID < out[j].TeamID
		}
		return out[i].PlayerID < out[j].PlayerID
	})
	return out, nil
}

func (r *PlayerRepository) findByExternalID(externalID string) (player.Player, bool) {
	for _, id := range sortedIDs(r.store.players) {
		if item := r.store.players[id]; item.ExternalID == externalID {
			return item, true
		}
	}
	return player.Player{}, false
}
