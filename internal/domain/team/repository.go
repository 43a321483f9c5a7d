package team

import "context"

// Repository describes team persistence needs from use cases.
type Repository interface {
	GetByID(ctx context.Context, id int64) (Team, bool, error)
	GetByName(ctx context.Context, name string) (Team, bool, error)
	List(ctx context.Context) ([]Team, error)
	Create(ctx context.Context, item Team) (Team, error)
	// Merge repoints matches, match stats, shots, players and appearances
	// from source to target and deletes source. A merge that would leave a
	// match with the same home and away team is rejected as a whole.
	Merge(ctx context.Context, sourceID, targetID int64) error
	// CheckMerge returns the error Merge would return for the same ids and
	// leaves the store untouched.
	CheckMerge(ctx context.Context, sourceID, targetID int64) error
}
