package match

import "context"

// Repository describes match persistence needs from use cases.
type Repository interface {
	GetByID(ctx context.Context, id int64) (Match, bool, error)
	GetByMatchID(ctx context.Context, matchID string) (Match, bool, error)
	List(ctx context.Context) ([]Match, error)
	ListBySeason(ctx context.Context, seasonID int64) ([]Match, error)
	// Create fails with errs.ErrDuplicateKey when match_id exists.
	Create(ctx context.Context, item Match) (Match, error)
	// Update rewrites the mutable fields, match_id included; a match_id
	// taken by another row fails with errs.ErrDuplicateKey.
	Update(ctx context.Context, item Match) error
	UpsertTeamStats(ctx context.Context, items []TeamStats) error
	ListTeamStatsBySeason(ctx context.Context, seasonID int64) ([]TeamStats, error)
}
