package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/riskibarqy/futball/internal/domain/naming"
	"github.com/riskibarqy/futball/internal/domain/team"
)

// TeamMapRow suggests a local team for one vendor team name. Suggested is
// empty when nothing scored at or above the threshold.
type TeamMapRow struct {
	External  string  `json:"statsbomb_name"`
	Suggested string  `json:"csv_name"`
	Score     float64 `json:"score"`
}

type TeamMapService struct {
	teams team.Repository
}

func NewTeamMapService(teams team.Repository) *TeamMapService {
	return &TeamMapService{teams: teams}
}

// Generate proposes alias rows for every team named in the vendor match
// list, sorted by vendor name.
func (s *TeamMapService) Generate(ctx context.Context, externals []ExternalMatch, strategy naming.Similarity, threshold float64) ([]TeamMapRow, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamMapService.Generate")
	defer span.End()

	if threshold <= 0 || threshold > 1 {
		threshold = naming.DefaultThreshold
	}

	locals, err := s.teams.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	candidates := make([]string, 0, len(locals))
	byNormalized := make(map[string]string, len(locals))
	for _, item := range locals {
		candidates = append(candidates, item.Name)
		if _, ok := byNormalized[naming.Normalize(item.Name)]; !ok {
			byNormalized[naming.Normalize(item.Name)] = item.Name
		}
	}
	sort.Strings(candidates)

	seen := make(map[string]struct{})
	names := make([]string, 0)
	for _, ext := range externals {
		for _, name := range []string{naming.Clean(ext.HomeTeam), naming.Clean(ext.AwayTeam)} {
			if name == "" {
				continue
			}
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			names = append(names, name)
		}
	}
	sort.Slice(names, func(i, j int) bool { return strings.ToLower(names[i]) < strings.ToLower(names[j]) })

	rows := make([]TeamMapRow, 0, len(names))
	for _, name := range names {
		row := TeamMapRow{External: name}
		if exact, ok := byNormalized[naming.Normalize(name)]; ok {
			row.Suggested, row.Score = exact, 1
		} else if best, ok := naming.BestMatch(strategy, name, candidates, threshold); ok {
			row.Suggested, row.Score = best.Name, best.Score
		}
		rows = append(rows, row)
	}
	return rows, nil
}
