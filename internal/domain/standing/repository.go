package standing

import "context"

// Repository describes standing persistence needs from use cases.
type Repository interface {
	// ReplaceForSeason deletes every row of the (tournament, season) pair and
	// reinserts the given ones inside a single transaction.
	ReplaceForSeason(ctx context.Context, tournamentID, seasonID int64, rows []Standing) error
}
