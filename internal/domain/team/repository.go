package team

import "context"

// Repository describes team persistence needs from use cases.
type Repository interface {
	ListByIDs(ctx context.Context, ids []int64) ([]Team, error)
	InsertBatch(ctx context.Context, items []Team) error
	UpdateBatch(ctx context.Context, items []Team) error

	// RecomputeReputations refreshes the stored reputation of every team from
	// its user count, stadium capacity and tournament reputation. Returns the
	// number of updated rows.
	RecomputeReputations(ctx context.Context) (int64, error)
}
