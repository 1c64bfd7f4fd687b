package store

import "context"

// Store is the read/write surface over the game's save database. Only
// ClearCanExpire writes, and only the can_expire flag.
type Store interface {
	Close(ctx context.Context) error
	EnsureIndexes(ctx context.Context) error
	TableColumns(ctx context.Context, table string) ([]string, error)

	PlayerEntitySystems(ctx context.Context, class string) ([]int64, error)
	UserProfileForEntitySystem(ctx context.Context, entitySystemID int64) (int64, bool, error)
	UserName(ctx context.Context, userProfileID int64) (string, bool, error)

	ExpiringItems(ctx context.Context) ([]int64, error)
	ItemPositions(ctx context.Context, itemIDs []int64) (map[int64]Position, error)
	ClearCanExpire(ctx context.Context, itemIDs []int64) (int64, error)

	BasesOwnedBy(ctx context.Context, userProfileID int64) ([]int64, error)
	BaseElements(ctx context.Context, baseIDs []int64) ([]BaseElement, error)
}
