package chat

import "context"

// Repository describes chat persistence needs from use cases.
type Repository interface {
	ListEnabled(ctx context.Context) ([]Chat, error)
}
