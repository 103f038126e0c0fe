package player

import "context"

// Repository describes player persistence needs from use cases.
type Repository interface {
	ListByTeamIDs(ctx context.Context, teamIDs []int64) ([]Player, error)
	InsertBatch(ctx context.Context, items []Player) error
	UpdateBatch(ctx context.Context, items []Player) error
}
