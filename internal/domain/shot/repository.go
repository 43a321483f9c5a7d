package shot

import "context"

// Repository describes shot persistence needs from use cases. Both batch
// writes are atomic: readers see either none or all of the batch.
type Repository interface {
	ListByMatch(ctx context.Context, matchID int64) ([]Shot, error)
	ListBySeason(ctx context.Context, seasonID int64) ([]Shot, error)
	CountByMatch(ctx context.Context, matchID int64) (int, error)
	InsertBatch(ctx context.Context, matchID int64, items []Shot) (int, error)
	// ReplaceByMatch deletes every shot of the match and inserts items in
	// the same unit of work.
	ReplaceByMatch(ctx context.Context, matchID int64, items []Shot) (int, error)
}
