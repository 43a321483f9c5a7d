package player

import "context"

// Repository describes player persistence needs from use cases.
type Repository interface {
	GetByExternalID(ctx context.Context, externalID string) (Player, bool, error)
	// Upsert creates the player or refreshes name, team and position.
	Upsert(ctx context.Context, item Player) (Player, bool, error)
	// UpsertAppearance reports whether a new row was created.
	UpsertAppearance(ctx context.Context, item Appearance) (bool, error)
	ListAppearancesByMatch(ctx context.Context, matchID int64) ([]Appearance, error)
}
