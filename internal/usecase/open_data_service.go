package usecase

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync/atomic"

	"github.com/sourcegraph/conc/pool"

	"github.com/riskibarqy/futball/internal/domain/competition"
	"github.com/riskibarqy/futball/internal/platform/logging"
)

const competitionsFile = "competitions.json"

// OpenDataDataset names a per-match directory of the open-data tree.
type OpenDataDataset string

const (
	DatasetEvents  OpenDataDataset = "events"
	DatasetLineups OpenDataDataset = "lineups"
)

func ParseOpenDataDataset(raw string) (OpenDataDataset, error) {
	switch OpenDataDataset(strings.ToLower(strings.TrimSpace(raw))) {
	case "", DatasetEvents:
		return DatasetEvents, nil
	case DatasetLineups:
		return DatasetLineups, nil
	default:
		return "", fmt.Errorf("%w: unknown dataset %q", ErrInvalidInput, raw)
	}
}

// LeagueSeasons lists the index seasons found for one league slug.
type LeagueSeasons struct {
	Slug         string   `json:"slug"`
	Title        string   `json:"title"`
	Seasons      []string `json:"seasons"`
	Matches      int      `json:"matches"`
	MissingFiles int      `json:"missing_files"`
}

type MatchListResult struct {
	Leagues []LeagueSeasons `json:"leagues"`
	// Unknown lists slugs with no league mapping.
	Unknown []string `json:"unknown"`
	Matches int      `json:"matches"`
	// Data is the merged vendor match list.
	Data []byte `json:"-"`
}

type FetchFilesOptions struct {
	Dataset      OpenDataDataset
	OutDir       string
	SkipExisting bool
	Limit        int
	DryRun       bool
	Workers      int
}

type FetchFilesStats struct {
	Requested  int `json:"requested"`
	Downloaded int `json:"downloaded"`
	Skipped    int `json:"skipped"`
	Missing    int `json:"missing"`
}

// OpenDataService downloads the open-data index, per-season match lists and
// per-match files.
type OpenDataService struct {
	client OpenDataClient
	codec  OpenDataCodec
	logger *logging.Logger
}

func NewOpenDataService(client OpenDataClient, codec OpenDataCodec, logger *logging.Logger) *OpenDataService {
	if logger == nil {
		logger = logging.Default()
	}
	return &OpenDataService{client: client, codec: codec, logger: logger}
}

// Competitions returns the raw index and its decoded entries.
func (s *OpenDataService) Competitions(ctx context.Context) ([]byte, []OpenDataSeason, error) {
	data, err := s.client.Fetch(ctx, competitionsFile)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch %s: %w", competitionsFile, err)
	}
	items, err := s.codec.DecodeCompetitions(data)
	if err != nil {
		return nil, nil, fmt.Errorf("decode %s: %w", competitionsFile, err)
	}
	return data, items, nil
}

// VerifySeasons reports, per league slug, which index seasons have a match
// list file.
func (s *OpenDataService) VerifySeasons(ctx context.Context, slugs []string) (MatchListResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.OpenDataService.VerifySeasons")
	defer span.End()

	return s.collect(ctx, slugs, false)
}

// BuildMatchList merges the match lists of every index season of the given
// leagues into one vendor match list.
func (s *OpenDataService) BuildMatchList(ctx context.Context, slugs []string) (MatchListResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.OpenDataService.BuildMatchList")
	defer span.End()

	return s.collect(ctx, slugs, true)
}

type seasonFile struct {
	league int
	season OpenDataSeason
	data   []byte
	found  bool
}

func (s *OpenDataService) collect(ctx context.Context, slugs []string, keepData bool) (MatchListResult, error) {
	_, index, err := s.Competitions(ctx)
	if err != nil {
		return MatchListResult{}, err
	}

	var result MatchListResult
	var files []*seasonFile
	for _, slug := range slugs {
		slug = strings.TrimSpace(slug)
		if slug == "" {
			continue
		}
		league, ok := competition.LeagueBySlug(slug)
		if !ok {
			result.Unknown = append(result.Unknown, slug)
			continue
		}
		result.Leagues = append(result.Leagues, LeagueSeasons{Slug: league.Slug, Title: league.Title})
		for _, entry := range index {
			if entry.CompetitionID == "" || entry.SeasonID == "" || !league.Matches(entry.CompetitionName, entry.CountryName) {
				continue
			}
			files = append(files, &seasonFile{league: len(result.Leagues) - 1, season: entry})
		}
	}

	p := pool.New().WithContext(ctx).WithCancelOnError().WithMaxGoroutines(4)
	for _, f := range files {
		p.Go(func(ctx context.Context) error {
			path := fmt.Sprintf("matches/%s/%s.json", f.season.CompetitionID, f.season.SeasonID)
			data, err := s.client.Fetch(ctx, path)
			if errors.Is(err, ErrNotFound) {
				return nil
			}
			if err != nil {
				return fmt.Errorf("fetch %s: %w", path, err)
			}
			f.data, f.found = data, true
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return MatchListResult{}, err
	}

	lists := make([][]byte, 0, len(files))
	for _, f := range files {
		league := &result.Leagues[f.league]
		if !f.found {
			league.MissingFiles++
			s.logger.WarnContext(ctx, "season match list missing", "league", league.Slug, "season", f.season.SeasonName)
			continue
		}
		matches, err := s.codec.DecodeMatches(f.data)
		if err != nil {
			return MatchListResult{}, fmt.Errorf("decode matches %s/%s: %w", f.season.CompetitionID, f.season.SeasonID, err)
		}
		league.Seasons = append(league.Seasons, seasonLabel(f.season))
		league.Matches += len(matches)
		result.Matches += len(matches)
		lists = append(lists, f.data)
	}
	for i := range result.Leagues {
		sort.Strings(result.Leagues[i].Seasons)
	}

	if keepData {
		result.Data, err = s.codec.MergeLists(lists...)
		if err != nil {
			return MatchListResult{}, fmt.Errorf("merge match lists: %w", err)
		}
	}

	s.logger.InfoContext(ctx, "open-data match lists collected",
		"leagues", len(result.Leagues),
		"seasons", len(lists),
		"matches", result.Matches,
		"unknown", len(result.Unknown),
	)
	return result, nil
}

func seasonLabel(entry OpenDataSeason) string {
	if entry.SeasonName != "" {
		return entry.SeasonName
	}
	return entry.SeasonID
}

// FetchFiles downloads <dataset>/<match_id>.json for every match id into
// OutDir. Ids without a file upstream are counted as missing.
func (s *OpenDataService) FetchFiles(ctx context.Context, matchIDs []string, opts FetchFilesOptions) (FetchFilesStats, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.OpenDataService.FetchFiles")
	defer span.End()

	if strings.TrimSpace(opts.OutDir) == "" {
		return FetchFilesStats{}, fmt.Errorf("%w: output directory is required", ErrInvalidInput)
	}
	if opts.Dataset == "" {
		opts.Dataset = DatasetEvents
	}

	ids := uniqueIDs(matchIDs)
	if opts.Limit > 0 && len(ids) > opts.Limit {
		ids = ids[:opts.Limit]
	}
	if !opts.DryRun {
		if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
			return FetchFilesStats{}, fmt.Errorf("create %s: %w", opts.OutDir, err)
		}
	}

	var downloaded, skipped, missing atomic.Int64
	p := pool.New().WithContext(ctx).WithCancelOnError().WithMaxGoroutines(normalizeWorkerCount(opts.Workers, len(ids)))
	for _, id := range ids {
		p.Go(func(ctx context.Context) error {
			dst := filepath.Join(opts.OutDir, id+".json")
			if opts.SkipExisting {
				if _, err := os.Stat(dst); err == nil {
					skipped.Add(1)
					return nil
				} else if !errors.Is(err, fs.ErrNotExist) {
					return fmt.Errorf("stat %s: %w", dst, err)
				}
			}

			rel := string(opts.Dataset) + "/" + id + ".json"
			data, err := s.client.Fetch(ctx, rel)
			if errors.Is(err, ErrNotFound) {
				missing.Add(1)
				return nil
			}
			if err != nil {
				return fmt.Errorf("fetch %s: %w", rel, err)
			}
			if !opts.DryRun {
				if err := os.WriteFile(dst, data, 0o644); err != nil {
					return fmt.Errorf("write %s: %w", dst, err)
				}
			}
			downloaded.Add(1)
			return nil
		})
	}
	err := p.Wait()

	stats := FetchFilesStats{
		Requested:  len(ids),
		Downloaded: int(downloaded.Load()),
		Skipped:    int(skipped.Load()),
		Missing:    int(missing.Load()),
	}
	if err != nil {
		return stats, err
	}
	s.logger.InfoContext(ctx, "open-data files fetched",
		"dataset", opts.Dataset,
		"requested", stats.Requested,
		"downloaded", stats.Downloaded,
		"skipped", stats.Skipped,
		"missing", stats.Missing,
		"dry_run", opts.DryRun,
	)
	return stats, nil
}

// MatchIDs lists the vendor ids of a match list in order, without blanks.
func MatchIDs(items []ExternalMatch) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if id := strings.TrimSpace(item.MatchID); id != "" {
			out = append(out, id)
		}
	}
	return out
}

func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || strings.ContainsAny(id, `/\`) {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
