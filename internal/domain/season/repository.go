package season

import "context"

// Repository describes season persistence needs from use cases.
type Repository interface {
	GetByID(ctx context.Context, id int64) (Season, bool, error)
	GetByCompetitionAndName(ctx context.Context, competitionID int64, name string) (Season, bool, error)
	ListByCompetition(ctx context.Context, competitionID int64) ([]Season, error)
	List(ctx context.Context) ([]Season, error)
	Create(ctx context.Context, item Season) (Season, error)
	// Merge repoints every match of source to target and deletes source.
	Merge(ctx context.Context, sourceID, targetID int64) error
	// CheckMerge returns the error Merge would return for the same ids and
	// leaves the store untouched.
	CheckMerge(ctx context.Context, sourceID, targetID int64) error
}
