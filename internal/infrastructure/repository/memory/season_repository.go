package memory

import (
	"context"

	"github.com/riskibarqy/futball/internal/domain/errs"
	"github.com/riskibarqy/futball/internal/domain/season"
)

type SeasonRepository struct {
	store *Store
}

func (r *SeasonRepository) GetByID(_ context.Context, id int64) (season.Season, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	item, ok := r.store.seasons[id]
	return item, ok, nil
}

func (r *SeasonRepository) GetByCompetitionAndName(_ context.Context, competitionID int64, name string) (season.Season, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, id := range sortedIDs(r.store.seasons) {
		item := r.store.seasons[id]
		if item.CompetitionID == competitionID && item.Name == name {
			return item, true, nil
		}
	}
	return season.Season{}, false, nil
}

func (r *SeasonRepository) ListByCompetition(_ context.Context, competitionID int64) ([]season.Season, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]season.Season, 0)
	for _, id := range sortedIDs(r.store.seasons) {
		if item := r.store.seasons[id]; item.CompetitionID == competitionID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *SeasonRepository) List(_ context.Context) ([]season.Season, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]season.Season, 0, len(r.store.seasons))
	for _, id := range sortedIDs(r.store.seasons) {
		out = append(out, r.store.seasons[id])
	}
	return out, nil
}

func (r *SeasonRepository) Create(_ context.Context, item season.Season) (season.Season, error) {
	if err := item.Validate(); err != nil {
		return season.Season{}, err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.competitions[item.CompetitionID]; !ok {
		return season.Season{}, errs.Referential("season %q: competition=%d does not exist", item.Name, item.CompetitionID)
	}
	for _, existing := range r.store.seasons {
		if existing.CompetitionID == item.CompetitionID && existing.Name == item.Name {
			return season.Season{}, errs.DuplicateKey("season competition=%d name=%q", item.CompetitionID, item.Name)
		}
	}
	item.ID = r.store.allocID()
	r.store.seasons[item.ID] = item
	return item, nil
}

// CheckMerge reports the error Merge would return without changing anything.
func (r *SeasonRepository) CheckMerge(_ context.Context, sourceID, targetID int64) error {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	if _, ok := r.store.seasons[sourceID]; !ok {
		return errs.NotFound("season=%d", sourceID)
	}
	if _, ok := r.store.seasons[targetID]; !ok {
		return errs.NotFound("season=%d", targetID)
	}
	return nil
}

func (r *SeasonRepository) Merge(_ context.Context, sourceID, targetID int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	s := r.store
	if _, ok := s.seasons[sourceID]; !ok {
		return errs.NotFound("season=%d", sourceID)
	}
	if _, ok := s.seasons[targetID]; !ok {
		return errs.NotFound("season=%d", targetID)
	}
	if sourceID == targetID {
		return nil
	}

	for id, item := range s.matches {
		if item.SeasonID == sourceID {
			item.SeasonID = targetID
			s.matches[id] = item
		}
	}
	delete(s.seasons, sourceID)
	return nil
}
