package competition

import "context"

// Repository describes competition persistence needs from use cases.
type Repository interface {
	GetByID(ctx context.Context, id int64) (Competition, bool, error)
	GetByName(ctx context.Context, name string) (Competition, bool, error)
	List(ctx context.Context) ([]Competition, error)
	// Create fails with errs.ErrDuplicateKey when the name is taken.
	Create(ctx context.Context, item Competition) (Competition, error)
	// Merge repoints every season of source to target and deletes source in
	// one unit. A source season whose name already exists under target is
	// folded into that season.
	Merge(ctx context.Context, sourceID, targetID int64) error
	// CheckMerge returns the error Merge would return for the same ids and
	// leaves the store untouched.
	CheckMerge(ctx context.Context, sourceID, targetID int64) error
}
