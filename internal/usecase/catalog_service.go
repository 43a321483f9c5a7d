package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/riskibarqy/futball/internal/domain/competition"
	"github.com/riskibarqy/futball/internal/domain/season"
)

// CatalogService lists what the presentation layer can browse.
type CatalogService struct {
	repos SeasonRepositories
}

func NewCatalogService(repos SeasonRepositories) *CatalogService {
	return &CatalogService{repos: repos}
}

// Competitions are sorted by name.
func (s *CatalogService) Competitions(ctx context.Context) ([]competition.Competition, error) {
	items, err := s.repos.Competitions.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list competitions: %w", err)
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return items, nil
}

func (s *CatalogService) Seasons(ctx context.Context, competitionID int64) ([]season.Season, error) {
	if competitionID <= 0 {
		return nil, fmt.Errorf("%w: competition id must be positive", ErrInvalidInput)
	}
	_, ok, err := s.repos.Competitions.GetByID(ctx, competitionID)
	if err != nil {
		return nil, fmt.Errorf("get competition: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: competition=%d", ErrNotFound, competitionID)
	}

	items, err := s.repos.Seasons.ListByCompetition(ctx, competitionID)
	if err != nil {
		return nil, fmt.Errorf("list seasons: %w", err)
	}
	return items, nil
}

// DefaultSeason picks the season with the most shots in the first
// competition by name. An empty store reports ok=false.
func (s *CatalogService) DefaultSeason(ctx context.Context) (season.Season, bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CatalogService.DefaultSeason")
	defer span.End()

	competitions, err := s.Competitions(ctx)
	if err != nil {
		return season.Season{}, false, err
	}
	if len(competitions) == 0 {
		return season.Season{}, false, nil
	}

	seasons, err := s.repos.Seasons.ListByCompetition(ctx, competitions[0].ID)
	if err != nil {
		return season.Season{}, false, fmt.Errorf("list seasons: %w", err)
	}

	var (
		best      season.Season
		bestShots = -1
	)
	for _, item := range seasons {
		shots, err := s.repos.Shots.ListBySeason(ctx, item.ID)
		if err != nil {
			return season.Season{}, false, fmt.Errorf("list shots: %w", err)
		}
		if len(shots) > bestShots {
			best, bestShots = item, len(shots)
		}
	}
	return best, bestShots >= 0, nil
}
