package memory

import (
	"context"

	"github.com/riskibarqy/futball/internal/domain/errs"
	"github.com/riskibarqy/futball/internal/domain/shot"
)

type ShotRepository struct {
	store *Store
}

func (r *ShotRepository) ListByMatch(_ context.Context, matchID int64) ([]shot.Shot, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]shot.Shot, 0)
	for _, id := range sortedIDs(r.store.shots) {
		if item := r.store.shots[id]; item.MatchID == matchID {
			out = append(out, item)
		}
	}
	shot.SortByTime(out)
	return out, nil
}

func (r *ShotRepository) ListBySeason(_ context.Context, seasonID int64) ([]shot.Shot, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]shot.Shot, 0)
	for _, id := range sortedIDs(r.store.shots) {
		item := r.store.shots[id]
		if m, ok := r.store.matches[item.MatchID]; ok && m.SeasonID == seasonID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *ShotRepository) CountByMatch(_ context.Context, matchID int64) (int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	count := 0
	for _, item := range r.store.shots {
		if item.MatchID == matchID {
			count++
		}
	}
	return count, nil
}

func (r *ShotRepository) InsertBatch(_ context.Context, matchID int64, items []shot.Shot) (int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	prepared, err := r.prepare(matchID, items)
	if err != nil {
		return 0, err
	}
	r.apply(prepared)
	return len(prepared), nil
}

func (r *ShotRepository) ReplaceByMatch(_ context.Context, matchID int64, items []shot.Shot) (int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	prepared, err := r.prepare(matchID, items)
	if err != nil {
		return 0, err
	}
	for id, item := range r.store.shots {
		if item.MatchID == matchID {
			delete(r.store.shots, id)
		}
	}
	r.apply(prepared)
	return len(prepared), nil
}

// prepare validates the whole batch before any row is written.
func (r *ShotRepository) prepare(matchID int64, items []shot.Shot) ([]shot.Shot, error) {
	m, ok := r.store.matches[matchID]
	if !ok {
		return nil, errs.Transaction(errs.NotFound("match=%d", matchID), "insert shots")
	}

	out := make([]shot.Shot, 0, len(items))
	for i, item := range items {
		item = item.Prepared()
		if err := item.ValidateFor(m.ID, m.HomeTeamID, m.AwayTeamID); err != nil {
			return nil, errs.Transaction(err, "insert shots for match %s: row %d", m.MatchID, i)
		}
		if item.PlayerID != nil {
			if _, ok := r.store.players[*item.PlayerID]; !ok {
				cause := errs.Referential("shot: player=%d does not exist", *item.PlayerID)
				return nil, errs.Transaction(cause, "insert shots for match %s: row %d", m.MatchID, i)
			}
		}
		out = append(out, item)
	}
	return out, nil
}

func (r *ShotRepository) apply(items []shot.Shot) {
	for _, item := range items {
		item.ID = r.store.allocID()
		r.store.shots[item.ID] = item
	}
}
