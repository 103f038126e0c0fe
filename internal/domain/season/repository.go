package season

import "context"

// Repository describes season persistence needs from use cases.
type Repository interface {
	List(ctx context.Context) ([]Season, error)
	InsertBatch(ctx context.Context, items []Season) error
	UpdateBatch(ctx context.Context, items []Season) error
}
