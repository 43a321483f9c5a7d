package memory

import (
	"context"

	"github.com/riskibarqy/futball/internal/domain/competition"
	"github.com/riskibarqy/futball/internal/domain/errs"
	"github.com/riskibarqy/futball/internal/domain/match"
	"github.com/riskibarqy/futball/internal/domain/season"
)

type CompetitionRepository struct {
	store *Store
}

func (r *CompetitionRepository) GetByID(_ context.Context, id int64) (competition.Competition, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	item, ok := r.store.competitions[id]
	return item, ok, nil
}

func (r *CompetitionRepository) GetByName(_ context.Context, name string) (competition.Competition, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, id := range sortedIDs(r.store.competitions) {
		if item := r.store.competitions[id]; item.Name == name {
			return item, true, nil
		}
	}
	return competition.Competition{}, false, nil
}

func (r *CompetitionRepository) List(_ context.Context) ([]competition.Competition, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]competition.Competition, 0, len(r.store.competitions))
	for _, id := range sortedIDs(r.store.competitions) {
		out = append(out, r.store.competitions[id])
	}
	return out, nil
}

func (r *CompetitionRepository) Create(_ context.Context, item competition.Competition) (competition.Competition, error) {
	if err := item.Validate(); err != nil {
		return competition.Competition{}, err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, existing := range r.store.competitions {
		if existing.Name == item.Name {
			return competition.Competition{}, errs.DuplicateKey("competition name=%q", item.Name)
		}
	}
	item.ID = r.store.allocID()
	r.store.competitions[item.ID] = item
	return item, nil
}

// CheckMerge reports the error Merge would return without changing anything.
func (r *CompetitionRepository) CheckMerge(_ context.Context, sourceID, targetID int64) error {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	if _, ok := r.store.competitions[sourceID]; !ok {
		return errs.NotFound("competition=%d", sourceID)
	}
	if _, ok := r.store.competitions[targetID]; !ok {
		return errs.NotFound("competition=%d", targetID)
	}
	return nil
}

func (r *CompetitionRepository) Merge(_ context.Context, sourceID, targetID int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	s := r.store
	if _, ok := s.competitions[sourceID]; !ok {
		return errs.NotFound("competition=%d", sourceID)
	}
	if _, ok := s.competitions[targetID]; !ok {
		return errs.NotFound("competition=%d", targetID)
	}
	if sourceID == targetID {
		return nil
	}

	targetSeasonByName := make(map[string]int64)
	for id, item := range s.seasons {
		if item.CompetitionID == targetID {
			targetSeasonByName[item.Name] = id
		}
	}

	movedSeasons := make(map[int64]season.Season)
	foldedSeasons := make(map[int64]int64)
	for id, item := range s.seasons {
		if item.CompetitionID != sourceID {
			continue
		}
		if survivor, ok := targetSeasonByName[item.Name]; ok {
			foldedSeasons[id] = survivor
			continue
		}
		item.CompetitionID = targetID
		movedSeasons[id] = item
	}

	movedMatches := make(map[int64]match.Match)
	for id, item := range s.matches {
		if survivor, ok := foldedSeasons[item.SeasonID]; ok {
			item.SeasonID = survivor
			movedMatches[id] = item
		}
	}

	for id, item := range movedSeasons {
		s.seasons[id] = item
	}
	for id, item := range movedMatches {
		s.matches[id] = item
	}
	for id := range foldedSeasons {
		delete(s.seasons, id)
	}
	delete(s.competitions, sourceID)
	return nil
}
