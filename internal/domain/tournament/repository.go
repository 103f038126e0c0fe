package tournament

import (
	"context"
	"time"
)

// Repository describes tournament persistence needs from use cases.
type Repository interface {
	List(ctx context.Context) ([]Tournament, error)
	InsertBatch(ctx context.Context, items []Tournament) error
	UpdateBatch(ctx context.Context, items []Tournament) error
	DeleteEnded(ctx context.Context, before time.Time) (int64, error)
}
