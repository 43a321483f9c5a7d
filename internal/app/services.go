package app

import (
	"strings"

	"github.com/riskibarqy/futball/external/statsbomb"
	"github.com/riskibarqy/futball/internal/config"
	feed "github.com/riskibarqy/futball/internal/infrastructure/feed/statsbomb"
	"github.com/riskibarqy/futball/internal/platform/logging"
	"github.com/riskibarqy/futball/internal/usecase"
)

// Services holds every use case wired against one record store.
type Services struct {
	Resolver  *usecase.EntityResolver
	Matches   *usecase.MatchImportService
	Shots     *usecase.ShotImportService
	Lineups   *usecase.LineupImportService
	StatsBomb *usecase.StatsBombSyncService
	TeamMap   *usecase.TeamMapService
	Merge     *usecase.MergeService
	OpenData  *usecase.OpenDataService
	Catalog   *usecase.CatalogService
	Standings *usecase.StandingsService
	XG        *usecase.XGService
	Summary   *usecase.SeasonSummaryService
	Decoder   *feed.Decoder
}

func NewServices(repos *Repositories, cfg config.Config, logger *logging.Logger) *Services {
	if logger == nil {
		logger = logging.Default()
	}

	decoder := feed.NewDecoder()
	resolver := usecase.NewEntityResolver(repos.Competitions, repos.Seasons, repos.Teams)
	seasonRepos := repos.Season()
	standings := usecase.NewStandingsService(seasonRepos)
	xg := usecase.NewXGService(seasonRepos)

	return &Services{
		Resolver:  resolver,
		Matches:   usecase.NewMatchImportService(resolver, repos.Matches, logger),
		Shots:     usecase.NewShotImportService(repos.Matches, repos.Teams, repos.Shots, repos.Players, decoder, logger),
		Lineups:   usecase.NewLineupImportService(repos.Matches, repos.Teams, repos.Players, decoder, logger),
		StatsBomb: usecase.NewStatsBombSyncService(resolver, repos.Matches, repos.Teams, logger),
		TeamMap:   usecase.NewTeamMapService(repos.Teams),
		Merge:     usecase.NewMergeService(repos.Competitions, repos.Seasons, repos.Teams, logger),
		OpenData:  usecase.NewOpenDataService(NewOpenDataClient(cfg, logger), decoder, logger),
		Catalog:   usecase.NewCatalogService(seasonRepos),
		Standings: standings,
		XG:        xg,
		Summary:   usecase.NewSeasonSummaryService(seasonRepos, standings, xg),
		Decoder:   decoder,
	}
}

// NewOpenDataClient reads a local checkout when STATSBOMB_BASE_URL is a
// filesystem path and downloads otherwise.
func NewOpenDataClient(cfg config.Config, logger *logging.Logger) usecase.OpenDataClient {
	base := strings.TrimSpace(cfg.StatsBombBaseURL)
	if base != "" && !strings.Contains(base, "://") {
		return feed.NewDirClient(base)
	}
	return statsbomb.NewClient(statsbomb.ClientConfig{
		BaseURL:        base,
		Timeout:        cfg.StatsBombTimeout,
		MaxRetries:     cfg.StatsBombMaxRetries,
		Logger:         logger,
		CircuitBreaker: cfg.StatsBombCircuit,
	})
}
