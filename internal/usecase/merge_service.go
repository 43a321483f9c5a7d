package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/riskibarqy/futball/internal/domain/alias"
	"github.com/riskibarqy/futball/internal/domain/competition"
	"github.com/riskibarqy/futball/internal/domain/errs"
	"github.com/riskibarqy/futball/internal/domain/naming"
	"github.com/riskibarqy/futball/internal/domain/season"
	"github.com/riskibarqy/futball/internal/domain/team"
	"github.com/riskibarqy/futball/internal/platform/logging"
)

type MergeKind string

const (
	MergeKindCompetition MergeKind = "competition"
	MergeKindSeason      MergeKind = "season"
	MergeKindTeam        MergeKind = "team"
)

func ParseMergeKind(raw string) (MergeKind, error) {
	switch kind := MergeKind(naming.Key(raw)); kind {
	case MergeKindCompetition, MergeKindSeason, MergeKindTeam:
		return kind, nil
	case "competitions", "seasons", "teams":
		return kind[:len(kind)-1], nil
	default:
		return "", fmt.Errorf("%w: unknown merge kind %q", ErrInvalidInput, raw)
	}
}

type MergeDecision string

const (
	DecisionMerge      MergeDecision = "merge"
	DecisionCreate     MergeDecision = "create_target"
	DecisionSkip       MergeDecision = "skip"
	DecisionRolledBack MergeDecision = "rolled_back"
	DecisionFailed     MergeDecision = "failed"
)

// MergePairResult records what happened to one source/target pair. A pair
// whose target had to be created carries both create_target and merge.
type MergePairResult struct {
	Source    string          `json:"source"`
	Target    string          `json:"target"`
	SourceID  int64           `json:"source_id,omitempty"`
	TargetID  int64           `json:"target_id,omitempty"`
	Decisions []MergeDecision `json:"decisions"`
	Reason    string          `json:"reason,omitempty"`
}

// MergeResult counts decisions. Rolled back merges count as skipped; failed
// covers errors other than an aborted transaction.
type MergeResult struct {
	Kind    MergeKind         `json:"kind"`
	DryRun  bool              `json:"dry_run"`
	Merged  int               `json:"merged"`
	Created int               `json:"created"`
	Skipped int               `json:"skipped"`
	Failed  int               `json:"failed"`
	Pairs   []MergePairResult `json:"pairs"`
}

// Add counts the pair's decisions and appends it.
func (r *MergeResult) Add(pair MergePairResult) {
	for _, d := range pair.Decisions {
		switch d {
		case DecisionMerge:
			r.Merged++
		case DecisionCreate:
			r.Created++
		case DecisionSkip, DecisionRolledBack:
			r.Skipped++
		case DecisionFailed:
			r.Failed++
		}
	}
	r.Pairs = append(r.Pairs, pair)
}

// MergeService folds duplicate competitions, seasons and teams into their
// canonical rows. Each individual merge is atomic in the record store; a
// batch is not.
type MergeService struct {
	competitions competition.Repository
	seasons      season.Repository
	teams        team.Repository
	logger       *logging.Logger
}

func NewMergeService(competitions competition.Repository, seasons season.Repository, teams team.Repository, logger *logging.Logger) *MergeService {
	if logger == nil {
		logger = logging.Default()
	}
	return &MergeService{competitions: competitions, seasons: seasons, teams: teams, logger: logger}
}

// Merge folds sourceID into targetID. Both rows must exist.
func (s *MergeService) Merge(ctx context.Context, kind MergeKind, sourceID, targetID int64, dryRun bool) (MergePairResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MergeService.Merge")
	defer span.End()

	ops, err := s.opsFor(kind)
	if err != nil {
		return MergePairResult{}, err
	}

	source, ok, err := ops.name(ctx, sourceID)
	if err != nil {
		return MergePairResult{}, err
	}
	if !ok {
		return MergePairResult{}, fmt.Errorf("%w: %s=%d", ErrNotFound, kind, sourceID)
	}
	target, ok, err := ops.name(ctx, targetID)
	if err != nil {
		return MergePairResult{}, err
	}
	if !ok {
		return MergePairResult{}, fmt.Errorf("%w: %s=%d", ErrNotFound, kind, targetID)
	}

	pair := MergePairResult{Source: source, Target: target, SourceID: sourceID, TargetID: targetID}
	s.apply(ctx, kind, ops, &pair, dryRun)
	if last := pair.Decisions[len(pair.Decisions)-1]; last == DecisionFailed || last == DecisionRolledBack {
		return pair, fmt.Errorf("merge %s=%d into %s=%d: %s", kind, sourceID, kind, targetID, pair.Reason)
	}
	return pair, nil
}

// MergeByNames folds each pair's source into its target by name. A missing
// target is created from the source's attributes first. Rows with an empty
// side or equal names are ignored.
func (s *MergeService) MergeByNames(ctx context.Context, kind MergeKind, pairs []alias.Row, dryRun bool) (MergeResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MergeService.MergeByNames")
	defer span.End()

	if kind == MergeKindSeason {
		return MergeResult{}, fmt.Errorf("%w: seasons are merged by grouping, not by name pairs", ErrInvalidInput)
	}
	ops, err := s.opsFor(kind)
	if err != nil {
		return MergeResult{}, err
	}

	result := MergeResult{Kind: kind, DryRun: dryRun}
	for _, row := range alias.Build(pairs).MergePairs() {
		pair := MergePairResult{Source: row.External, Target: row.Canonical}

		sourceID, sourceAttrs, ok, err := ops.byName(ctx, row.External)
		if err != nil {
			return result, err
		}
		if !ok {
			pair.Decisions = []MergeDecision{DecisionSkip}
			pair.Reason = "source not found"
			result.Add(pair)
			continue
		}
		pair.SourceID = sourceID

		targetID, _, ok, err := ops.byName(ctx, row.Canonical)
		if err != nil {
			return result, err
		}
		if !ok {
			pair.Decisions = append(pair.Decisions, DecisionCreate)
			if !dryRun {
				targetID, err = ops.create(ctx, row.Canonical, sourceAttrs)
				if err != nil {
					pair.Decisions = []MergeDecision{DecisionFailed}
					pair.Reason = err.Error()
					s.logger.WarnContext(ctx, "create merge target failed", "kind", kind, "target", row.Canonical, "error", err)
					result.Add(pair)
					continue
				}
			}
		}
		pair.TargetID = targetID

		s.apply(ctx, kind, ops, &pair, dryRun)
		result.Add(pair)
	}

	s.logger.InfoContext(ctx, "merge by names finished",
		"kind", kind, "dry_run", dryRun,
		"merged", result.Merged, "created", result.Created, "skipped", result.Skipped, "failed", result.Failed,
	)
	return result, nil
}

// MergeDuplicateSeasons groups seasons of a competition by season.GroupKey and
// folds every member of a group into its lowest id. An empty
// competitionName covers every competition; an unknown one merges nothing.
func (s *MergeService) MergeDuplicateSeasons(ctx context.Context, competitionName string, dryRun bool) (MergeResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MergeService.MergeDuplicateSeasons")
	defer span.End()

	result := MergeResult{Kind: MergeKindSeason, DryRun: dryRun}

	var items []season.Season
	var err error
	if name := naming.Clean(competitionName); name != "" {
		comp, ok, getErr := s.competitions.GetByName(ctx, name)
		if getErr != nil {
			return result, fmt.Errorf("get competition: %w", getErr)
		}
		if !ok {
			s.logger.WarnContext(ctx, "competition not found, no seasons merged", "competition", name)
			return result, nil
		}
		items, err = s.seasons.ListByCompetition(ctx, comp.ID)
	} else {
		items, err = s.seasons.List(ctx)
	}
	if err != nil {
		return result, fmt.Errorf("list seasons: %w", err)
	}

	groups := make(map[season.Key][]season.Season)
	for _, item := range items {
		key := season.GroupKey(item.CompetitionID, item.Name)
		groups[key] = append(groups[key], item)
	}

	keys := make([]season.Key, 0, len(groups))
	for key, members := range groups {
		if len(members) > 1 {
			keys = append(keys, key)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].CompetitionID != keys[j].CompetitionID {
			return keys[i].CompetitionID < keys[j].CompetitionID
		}
		return keys[i].Name < keys[j].Name
	})

	ops, _ := s.opsFor(MergeKindSeason)
	for _, key := range keys {
		members := groups[key]
		sort.Slice(members, func(i, j int) bool { return members[i].ID < members[j].ID })
		survivor := members[0]
		for _, dup := range members[1:] {
			pair := MergePairResult{Source: dup.Name, Target: survivor.Name, SourceID: dup.ID, TargetID: survivor.ID}
			s.apply(ctx, MergeKindSeason, ops, &pair, dryRun)
			result.Add(pair)
		}
	}

	s.logger.InfoContext(ctx, "season grouping finished",
		"groups", len(keys), "dry_run", dryRun, "merged", result.Merged, "skipped", result.Skipped, "failed", result.Failed,
	)
	return result, nil
}

// apply takes the final decision for a pair whose ids are known (TargetID may
// be zero in a dry run that would create the target). A dry run asks the
// repository for the outcome so it reports what the live run would do.
func (s *MergeService) apply(ctx context.Context, kind MergeKind, ops mergeOps, pair *MergePairResult, dryRun bool) {
	if pair.TargetID != 0 && pair.SourceID == pair.TargetID {
		pair.Decisions = append(pair.Decisions, DecisionSkip)
		pair.Reason = "source and target are the same record"
		return
	}
	var err error
	switch {
	case dryRun && pair.TargetID == 0:
	case dryRun:
		err = ops.check(ctx, pair.SourceID, pair.TargetID)
	default:
		err = ops.merge(ctx, pair.SourceID, pair.TargetID)
	}

	switch {
	case err == nil:
		pair.Decisions = append(pair.Decisions, DecisionMerge)
	case errors.Is(err, errs.ErrTransaction):
		pair.Decisions = append(pair.Decisions, DecisionRolledBack)
		pair.Reason = err.Error()
		s.logger.WarnContext(ctx, "merge rolled back", "kind", kind, "source", pair.Source, "target", pair.Target, "dry_run", dryRun, "error", err)
	default:
		pair.Decisions = append(pair.Decisions, DecisionFailed)
		pair.Reason = err.Error()
		s.logger.ErrorContext(ctx, "merge failed", "kind", kind, "source", pair.Source, "target", pair.Target, "dry_run", dryRun, "error", err)
	}
}

// mergeOps adapts one entity repository to the merge flow. attrs carries the
// attributes copied onto a newly created target (the country).
type mergeOps struct {
	name   func(ctx context.Context, id int64) (string, bool, error)
	byName func(ctx context.Context, name string) (id int64, attrs string, ok bool, err error)
	create func(ctx context.Context, name, attrs string) (int64, error)
	merge  func(ctx context.Context, sourceID, targetID int64) error
	check  func(ctx context.Context, sourceID, targetID int64) error
}

func (s *MergeService) opsFor(kind MergeKind) (mergeOps, error) {
	switch kind {
	case MergeKindCompetition:
		return mergeOps{
			name: func(ctx context.Context, id int64) (string, bool, error) {
				item, ok, err := s.competitions.GetByID(ctx, id)
				return item.Name, ok, wrapErr("get competition", err)
			},
			byName: func(ctx context.Context, name string) (int64, string, bool, error) {
				item, ok, err := s.competitions.GetByName(ctx, name)
				return item.ID, item.Country, ok, wrapErr("get competition", err)
			},
			create: func(ctx context.Context, name, country string) (int64, error) {
				item, err := s.competitions.Create(ctx, competition.Competition{Name: name, Country: country})
				return item.ID, wrapErr("create competition", err)
			},
			merge: s.competitions.Merge,
			check: s.competitions.CheckMerge,
		}, nil
	case MergeKindSeason:
		return mergeOps{
			name: func(ctx context.Context, id int64) (string, bool, error) {
				item, ok, err := s.seasons.GetByID(ctx, id)
				return item.Name, ok, wrapErr("get season", err)
			},
			merge: s.seasons.Merge,
			check: s.seasons.CheckMerge,
		}, nil
	case MergeKindTeam:
		return mergeOps{
			name: func(ctx context.Context, id int64) (string, bool, error) {
				item, ok, err := s.teams.GetByID(ctx, id)
				return item.Name, ok, wrapErr("get team", err)
			},
			byName: func(ctx context.Context, name string) (int64, string, bool, error) {
				item, ok, err := s.teams.GetByName(ctx, name)
				return item.ID, item.Country, ok, wrapErr("get team", err)
			},
			create: func(ctx context.Context, name, country string) (int64, error) {
				item, err := s.teams.Create(ctx, team.Team{Name: name, Country: country})
				return item.ID, wrapErr("create team", err)
			},
			merge: s.teams.Merge,
			check: s.teams.CheckMerge,
		}, nil
	default:
		return mergeOps{}, fmt.Errorf("%w: unknown merge kind %q", ErrInvalidInput, kind)
	}
}

func wrapErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", op, err)
}
