package usecase

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/riskibarqy/futball/internal/domain/alias"
	"github.com/riskibarqy/futball/internal/domain/errs"
	"github.com/riskibarqy/futball/internal/domain/match"
	"github.com/riskibarqy/futball/internal/domain/player"
	"github.com/riskibarqy/futball/internal/domain/shot"
	"github.com/riskibarqy/futball/internal/domain/team"
	"github.com/riskibarqy/futball/internal/platform/logging"
)

// Files in an events directory that are not per-match event lists.
var nonEventFiles = map[string]struct{}{
	"matches.json":      {},
	"competitions.json": {},
	"datapackage.json":  {},
}

type ShotImportOptions struct {
	// Replace deletes the match's existing shots in the same unit of work.
	// Without it a match that already has shots is left untouched.
	Replace bool
	DryRun  bool
	// Aliases maps vendor team names before they are compared with the
	// match's two sides.
	Aliases alias.Map
	// MatchMap translates vendor match ids (file stems) to local match_id.
	MatchMap map[string]string
	Workers  int
}

type ShotImportStats struct {
	Created int `json:"created"`
	Skipped int `json:"skipped"`
}

type ShotImportTotals struct {
	Files        int `json:"files"`
	FilesSkipped int `json:"files_skipped"`
	Events       int `json:"events"`
	Created      int `json:"created"`
	Skipped      int `json:"skipped"`
}

type ShotImportService struct {
	matches match.Repository
	teams   team.Repository
	shots   shot.Repository
	players player.Repository
	source  EventSource
	logger  *logging.Logger
}

func NewShotImportService(
	matches match.Repository,
	teams team.Repository,
	shots shot.Repository,
	players player.Repository,
	source EventSource,
	logger *logging.Logger,
) *ShotImportService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ShotImportService{
		matches: matches,
		teams:   teams,
		shots:   shots,
		players: players,
		source:  source,
		logger:  logger,
	}
}

// ImportEvents converts the shot events of one match and writes them as a
// single batch. Events without a usable location are skipped; a shot whose
// team is neither side of the match rejects the whole batch with
// ErrReferential.
func (s *ShotImportService) ImportEvents(ctx context.Context, m match.Match, events []ExternalEvent, opts ShotImportOptions) (ShotImportStats, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ShotImportService.ImportEvents")
	defer span.End()

	var stats ShotImportStats

	home, away, err := matchSides(ctx, s.teams, m)
	if err != nil {
		return stats, err
	}

	items := make([]shot.Shot, 0, len(events))
	for _, event := range events {
		if !event.IsShot() {
			continue
		}
		if len(event.Location) < 2 {
			stats.Skipped++
			s.logger.WarnContext(ctx, "skip shot without location", "match_id", m.MatchID, "minute", event.Minute, "second", event.Second)
			continue
		}

		teamID, ok := resolveSide(event.TeamName, home, away, opts.Aliases)
		if !ok {
			return stats, errs.Referential("match %s: shot team %q is neither %q nor %q", m.MatchID, event.TeamName, home.Name, away.Name)
		}

		item := shot.Shot{
			MatchID:  m.ID,
			TeamID:   teamID,
			Minute:   event.Minute,
			Second:   event.Second,
			X:        event.Location[0],
			Y:        event.Location[1],
			Outcome:  shot.OutcomeFromVendor(event.Outcome),
			BodyPart: shot.BodyPartFromVendor(event.BodyPart),
			ShotType: shot.TypeFromVendor(event.ShotType),
		}
		if event.XG != nil {
			item.XG = *event.XG
		}
		if playerID, ok, err := s.lookupPlayer(ctx, event.PlayerID); err != nil {
			return stats, err
		} else if ok {
			item.PlayerID = &playerID
		}

		item = item.Prepared()
		if err := item.ValidateFor(m.ID, m.HomeTeamID, m.AwayTeamID); err != nil {
			return stats, fmt.Errorf("match %s shot at %d:%02d: %w", m.MatchID, item.Minute, item.Second, err)
		}
		items = append(items, item)
	}

	if !opts.Replace {
		existing, err := s.shots.CountByMatch(ctx, m.ID)
		if err != nil {
			return stats, fmt.Errorf("count shots: %w", err)
		}
		if existing > 0 {
			stats.Skipped += len(items)
			return stats, nil
		}
	}

	if opts.DryRun || len(items) == 0 && !opts.Replace {
		stats.Created += len(items)
		return stats, nil
	}

	var written int
	if opts.Replace {
		written, err = s.shots.ReplaceByMatch(ctx, m.ID, items)
	} else {
		written, err = s.shots.InsertBatch(ctx, m.ID, items)
	}
	if err != nil {
		return stats, fmt.Errorf("write shots for match %s: %w", m.MatchID, err)
	}
	stats.Created += written
	return stats, nil
}

// ImportFiles imports one events file or every events file under a
// directory. Files are decoded concurrently; each match is written on its
// own, in file name order.
func (s *ShotImportService) ImportFiles(ctx context.Context, path string, opts ShotImportOptions) (ShotImportTotals, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ShotImportService.ImportFiles")
	defer span.End()

	var totals ShotImportTotals
	files, err := ListEventFiles(path)
	if err != nil {
		return totals, err
	}
	if len(files) == 0 {
		return totals, nil
	}

	decoded, err := s.decodeAll(ctx, files, opts.Workers)
	if err != nil {
		return totals, err
	}

	for i, file := range files {
		totals.Files++
		result := decoded[i]
		if result.err != nil {
			totals.FilesSkipped++
			s.logger.WarnContext(ctx, "skip events file", "file", file, "error", result.err)
			continue
		}
		totals.Events += len(result.events)

		externalID := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
		matchID := externalID
		if mapped, ok := opts.MatchMap[externalID]; ok && mapped != "" {
			matchID = mapped
		}

		m, ok, err := s.matches.GetByMatchID(ctx, matchID)
		if err != nil {
			return totals, fmt.Errorf("get match %s: %w", matchID, err)
		}
		if !ok {
			totals.FilesSkipped++
			s.logger.WarnContext(ctx, "skip events file, match not found", "file", file, "match_id", matchID, "error_kind", "not_found")
			continue
		}

		stats, err := s.ImportEvents(ctx, m, result.events, opts)
		totals.Created += stats.Created
		totals.Skipped += stats.Skipped
		if err != nil {
			if !IsRejected(err) && !errors.Is(err, errs.ErrNotFound) {
				return totals, err
			}
			totals.FilesSkipped++
			s.logger.WarnContext(ctx, "skip events file", "file", file, "match_id", matchID, "error_kind", errs.Kind(err), "error", err)
		}
	}

	s.logger.InfoContext(ctx, "shot import finished",
		"files", totals.Files, "files_skipped", totals.FilesSkipped, "events", totals.Events,
		"created", totals.Created, "skipped", totals.Skipped, "replace", opts.Replace, "dry_run", opts.DryRun,
	)
	return totals, nil
}

type decodedEvents struct {
	events []ExternalEvent
	err    error
}

func (s *ShotImportService) decodeAll(ctx context.Context, files []string, workers int) ([]decodedEvents, error) {
	if s.source == nil {
		return nil, fmt.Errorf("%w: events source is not configured", ErrDependencyUnavailable)
	}

	out := make([]decodedEvents, len(files))
	pool, err := ants.NewPool(normalizeWorkerCount(workers, len(files)))
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var wg sync.WaitGroup
	for i, file := range files {
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()
			events, err := s.source.DecodeEvents(ctx, file)
			out[i] = decodedEvents{events: events, err: err}
		}); err != nil {
			wg.Done()
			wg.Wait()
			return nil, fmt.Errorf("submit decode task to worker pool: %w", err)
		}
	}
	wg.Wait()
	return out, nil
}

// ListEventFiles resolves path to the events files it names, sorted.
func ListEventFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: events path %s: %v", ErrInvalidInput, path, err)
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	var files []string
	err = filepath.WalkDir(path, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(p), ".json") {
			return nil
		}
		if _, skip := nonEventFiles[strings.ToLower(d.Name())]; skip {
			return nil
		}
		files = append(files, p)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan events dir %s: %w", path, err)
	}
	sort.Strings(files)
	return files, nil
}

func (s *ShotImportService) lookupPlayer(ctx context.Context, externalID string) (int64, bool, error) {
	externalID = strings.TrimSpace(externalID)
	if externalID == "" || s.players == nil {
		return 0, false, nil
	}
	item, ok, err := s.players.GetByExternalID(ctx, externalID)
	if err != nil {
		return 0, false, fmt.Errorf("get player %s: %w", externalID, err)
	}
	return item.ID, ok, nil
}

// resolveSide matches a vendor team name against the two sides of a match,
// case-insensitively, after aliasing. An empty name means the home side.
func resolveSide(name string, home, away team.Team, aliases alias.Map) (int64, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return home.ID, true
	}
	for _, candidate := range []string{name, aliases.Canonical(name)} {
		switch {
		case strings.EqualFold(candidate, home.Name):
			return home.ID, true
		case strings.EqualFold(candidate, away.Name):
			return away.ID, true
		}
	}
	return 0, false
}

func normalizeWorkerCount(requested, tasks int) int {
	workers := requested
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > tasks {
		workers = tasks
	}
	if workers < 1 {
		workers = 1
	}
	return workers
}

// IsRejected reports whether err is a write rejection rather than an
// infrastructure failure.
func IsRejected(err error) bool {
	return errors.Is(err, errs.ErrReferential) || errors.Is(err, errs.ErrInput) || errors.Is(err, errs.ErrTransaction)
}
