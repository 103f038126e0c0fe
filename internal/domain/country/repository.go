package country

import "context"

// Repository describes country persistence needs from use cases.
type Repository interface {
	List(ctx context.Context) ([]Country, error)
	InsertBatch(ctx context.Context, items []Country) error
	UpdateBatch(ctx context.Context, items []Country) error
}
