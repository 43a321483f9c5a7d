package memory

import (
	"context"

	"github.com/riskibarqy/futball/internal/domain/errs"
	"github.com/riskibarqy/futball/internal/domain/match"
	"github.com/riskibarqy/futball/internal/domain/player"
	"github.com/riskibarqy/futball/internal/domain/shot"
	"github.com/riskibarqy/futball/internal/domain/team"
)

type TeamRepository struct {
	store *Store
}

func (r *TeamRepository) GetByID(_ context.Context, id int64) (team.Team, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	item, ok := r.store.teams[id]
	return item, ok, nil
}

func (r *TeamRepository) GetByName(_ context.Context, name string) (team.Team, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, id := range sortedIDs(r.store.teams) {
		if item := r.store.teams[id]; item.Name == name {
			return item, true, nil
		}
	}
	return team.Team{}, false, nil
}

func (r *TeamRepository) List(_ context.Context) ([]team.Team, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]team.Team, 0, len(r.store.teams))
	for _, id := range sortedIDs(r.store.teams) {
		out = append(out, r.store.teams[id])
	}
	return out, nil
}

func (r *TeamRepository) Create(_ context.Context, item team.Team) (team.Team, error) {
	if err := item.Validate(); err != nil {
		return team.Team{}, err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, existing := range r.store.teams {
		if existing.Name == item.Name {
			return team.Team{}, errs.DuplicateKey("team name=%q", item.Name)
		}
	}
	item.ID = r.store.allocID()
	r.store.teams[item.ID] = item
	return item, nil
}

// CheckMerge reports the error Merge would return without changing anything.
func (r *TeamRepository) CheckMerge(_ context.Context, sourceID, targetID int64) error {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return r.checkMerge(sourceID, targetID)
}

// checkMerge expects the store lock to be held.
func (r *TeamRepository) checkMerge(sourceID, targetID int64) error {
	s := r.store
	if _, ok := s.teams[sourceID]; !ok {
		return errs.NotFound("team=%d", sourceID)
	}
	if _, ok := s.teams[targetID]; !ok {
		return errs.NotFound("team=%d", targetID)
	}
	if sourceID == targetID {
		return nil
	}
	for _, item := range s.matches {
		if item.Involves(sourceID) && item.Involves(targetID) {
			cause := errs.Referential("match %s would have team=%d on both sides", item.MatchID, targetID)
			return errs.Transaction(cause, "merge team=%d into team=%d", sourceID, targetID)
		}
	}
	return nil
}

func (r *TeamRepository) Merge(_ context.Context, sourceID, targetID int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if err := r.checkMerge(sourceID, targetID); err != nil {
		return err
	}
	if sourceID == targetID {
		return nil
	}

	s := r.store
	repoint := func(id int64) int64 {
		if id == sourceID {
			return targetID
		}
		return id
	}

	matches := make(map[int64]match.Match)
	for id, item := range s.matches {
		if !item.Involves(sourceID) {
			continue
		}
		item.HomeTeamID = repoint(item.HomeTeamID)
		item.AwayTeamID = repoint(item.AwayTeamID)
		matches[id] = item
	}

	stats := make(map[statsKey]match.TeamStats)
	for key, item := range s.teamStats {
		if item.TeamID == sourceID {
			stats[key] = item
		}
	}

	shots := make(map[int64]shot.Shot)
	for id, item := range s.shots {
		if item.TeamID == sourceID {
			item.TeamID = targetID
			shots[id] = item
		}
	}

	players := make(map[int64]player.Player)
	for id, item := range s.players {
		if item.TeamID == sourceID {
			item.TeamID = targetID
			players[id] = item
		}
	}

	appearances := make(map[appearanceKey]player.Appearance)
	for key, item := range s.appearances {
		if item.TeamID == sourceID {
			item.TeamID = targetID
			appearances[key] = item
		}
	}

	for id, item := range matches {
		s.matches[id] = item
	}
	for key, item := range stats {
		delete(s.teamStats, key)
		item.TeamID = targetID
		s.teamStats[statsKey{matchID: item.MatchID, teamID: targetID}] = item
	}
	for id, item := range shots {
		s.shots[id] = item
	}
	for id, item := range players {
		s.players[id] = item
	}
	for key, item := range appearances {
		s.appearances[key] = item
	}
	delete(s.teams, sourceID)
	return nil
}
