package memory

import (
	"context"

	"github.com/riskibarqy/futball/internal/domain/errs"
	"github.com/riskibarqy/futball/internal/domain/match"
)

type MatchRepository struct {
	store *Store
}

func (r *MatchRepository) GetByID(_ context.Context, id int64) (match.Match, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	item, ok := r.store.matches[id]
	return item, ok, nil
}

func (r *MatchRepository) GetByMatchID(_ context.Context, matchID string) (match.Match, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, item := range r.store.matches {
		if item.MatchID == matchID {
			return item, true, nil
		}
	}
	return match.Match{}, false, nil
}

func (r *MatchRepository) List(_ context.Context) ([]match.Match, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]match.Match, 0, len(r.store.matches))
	for _, item := range r.store.matches {
		out = append(out, item)
	}
	match.SortByDateDesc(out)
	return out, nil
}

func (r *MatchRepository) ListBySeason(_ context.Context, seasonID int64) ([]match.Match, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]match.Match, 0)
	for _, item := range r.store.matches {
		if item.SeasonID == seasonID {
			out = append(out, item)
		}
	}
	match.SortByDateDesc(out)
	return out, nil
}

func (r *MatchRepository) Create(_ context.Context, item match.Match) (match.Match, error) {
	item.Status = match.NormalizeStatus(item.Status)
	if err := item.Validate(); err != nil {
		return match.Match{}, err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if err := r.checkReferences(item); err != nil {
		return match.Match{}, err
	}
	if r.matchIDTaken(item.MatchID, 0) {
		return match.Match{}, errs.DuplicateKey("match match_id=%q", item.MatchID)
	}
	item.ID = r.store.allocID()
	r.store.matches[item.ID] = item
	return item, nil
}

func (r *MatchRepository) Update(_ context.Context, item match.Match) error {
	item.Status = match.NormalizeStatus(item.Status)
	if err := item.Validate(); err != nil {
		return err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.matches[item.ID]; !ok {
		return errs.NotFound("match=%d", item.ID)
	}
	if err := r.checkReferences(item); err != nil {
		return err
	}
	if r.matchIDTaken(item.MatchID, item.ID) {
		return errs.DuplicateKey("match match_id=%q", item.MatchID)
	}
	r.store.matches[item.ID] = item
	return nil
}

func (r *MatchRepository) UpsertTeamStats(_ context.Context, items []match.TeamStats) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, item := range items {
		m, ok := r.store.matches[item.MatchID]
		if !ok {
			return errs.Transaction(errs.NotFound("match=%d", item.MatchID), "upsert match team stats")
		}
		if err := item.ValidateFor(m); err != nil {
			return errs.Transaction(err, "upsert match team stats")
		}
	}
	for _, item := range items {
		r.store.teamStats[statsKey{matchID: item.MatchID, teamID: item.TeamID}] = item
	}
	return nil
}

func (r *MatchRepository) ListTeamStatsBySeason(_ context.Context, seasonID int64) ([]match.TeamStats, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]match.TeamStats, 0)
	for _, item := range r.store.teamStats {
		if m, ok := r.store.matches[item.MatchID]; ok && m.SeasonID == seasonID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *MatchRepository) checkReferences(item match.Match) error {
	if _, ok := r.store.seasons[item.SeasonID]; !ok {
		return errs.Referential("match %s: season=%d does not exist", item.MatchID, item.SeasonID)
	}
	if _, ok := r.store.teams[item.HomeTeamID]; !ok {
		return errs.Referential("match %s: home team=%d does not exist", item.MatchID, item.HomeTeamID)
	}
	if _, ok := r.store.teams[item.AwayTeamID]; !ok {
		return errs.Referential("match %s: away team=%d does not exist", item.MatchID, item.AwayTeamID)
	}
	return nil
}

func (r *MatchRepository) matchIDTaken(matchID string, exceptID int64) bool {
	for id, existing := range r.store.matches {
		if id != exceptID && existing.MatchID == matchID {
			return true
		}
	}
	return false
}
