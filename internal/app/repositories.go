package app

import (
	"context"
	"fmt"

	"github.com/riskibarqy/futball/internal/config"
	"github.com/riskibarqy/futball/internal/domain/competition"
	"github.com/riskibarqy/futball/internal/domain/match"
	"github.com/riskibarqy/futball/internal/domain/player"
	"github.com/riskibarqy/futball/internal/domain/season"
	"github.com/riskibarqy/futball/internal/domain/shot"
	"github.com/riskibarqy/futball/internal/domain/team"
	"github.com/riskibarqy/futball/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/futball/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/futball/internal/infrastructure/repository/postgres"
	basecache "github.com/riskibarqy/futball/internal/platform/cache"
	"github.com/riskibarqy/futball/internal/platform/logging"
	"github.com/riskibarqy/futball/internal/usecase"
)

// Repositories is the record store a process runs against.
type Repositories struct {
	Competitions competition.Repository
	Seasons      season.Repository
	Teams        team.Repository
	Matches      match.Repository
	Shots        shot.Repository
	Players      player.Repository
	Backend      string

	close func() error
}

// OpenRepositories connects to PostgreSQL when DB_URL is set and falls back
// to the in-memory store otherwise.
func OpenRepositories(ctx context.Context, cfg config.Config, logger *logging.Logger) (*Repositories, error) {
	if logger == nil {
		logger = logging.Default()
	}

	if !cfg.UsesDatabase() {
		repos, err := NewMemoryRepositories(ctx, cfg.SeedDemo)
		if err != nil {
			return nil, err
		}
		logger.InfoContext(ctx, "record store ready", "backend", repos.Backend, "seed_demo", cfg.SeedDemo)
		return repos, nil
	}

	db, err := OpenDB(ctx, cfg)
	if err != nil {
		return nil, err
	}
	repos := &Repositories{
		Competitions: postgres.NewCompetitionRepository(db),
		Seasons:      postgres.NewSeasonRepository(db),
		Teams:        postgres.NewTeamRepository(db),
		Matches:      postgres.NewMatchRepository(db),
		Shots:        postgres.NewShotRepository(db),
		Players:      postgres.NewPlayerRepository(db),
		Backend:      "postgres",
		close:        db.Close,
	}
	if cfg.CacheEnabled {
		repos.withCache(basecache.NewStore(cfg.CacheTTL))
	}
	logger.InfoContext(ctx, "record store ready", "backend", repos.Backend, "cache_enabled", cfg.CacheEnabled, "cache_ttl", cfg.CacheTTL.String())
	return repos, nil
}

func NewMemoryRepositories(ctx context.Context, seed bool) (*Repositories, error) {
	store := memory.NewStore()
	if seed {
		if err := memory.SeedDemo(ctx, store); err != nil {
			return nil, fmt.Errorf("seed demo data: %w", err)
		}
	}
	return &Repositories{
		Competitions: store.Competitions(),
		Seasons:      store.Seasons(),
		Teams:        store.Teams(),
		Matches:      store.Matches(),
		Shots:        store.Shots(),
		Players:      store.Players(),
		Backend:      "memory",
	}, nil
}

func (r *Repositories) withCache(store *basecache.Store) {
	r.Competitions = cache.NewCompetitionRepository(r.Competitions, store)
	r.Seasons = cache.NewSeasonRepository(r.Seasons, store)
	r.Teams = cache.NewTeamRepository(r.Teams, store)
	r.Matches = cache.NewMatchRepository(r.Matches, store)
	r.Shots = cache.NewShotRepository(r.Shots, store)
	r.Backend += "+cache"
}

func (r *Repositories) Season() usecase.SeasonRepositories {
	return usecase.SeasonRepositories{
		Competitions: r.Competitions,
		Seasons:      r.Seasons,
		Teams:        r.Teams,
		Matches:      r.Matches,
		Shots:        r.Shots,
	}
}

func (r *Repositories) Close() error {
	if r == nil || r.close == nil {
		return nil
	}
	return r.close()
}
