package match

import (
	"context"
	"time"
)

// Repository describes match persistence needs from use cases.
type Repository interface {
	ListBetween(ctx context.Context, from, to time.Time) ([]Match, error)
	InsertBatch(ctx context.Context, items []Match) error
	UpdateBatch(ctx context.Context, items []Match) error

	// DeleteStale removes canceled or postponed matches, plus unfinished ones
	// that kicked off before the cutoff. Returns the number of deleted rows.
	DeleteStale(ctx context.Context, unfinishedBefore time.Time) (int64, error)

	// ListRefreshable returns matches whose score or status may still move:
	// in progress, or not started with kickoff at or before the cutoff.
	ListRefreshable(ctx context.Context, startedBefore time.Time) ([]Match, error)

	// ListTeamIDsBetween returns the distinct home and away team ids of
	// matches kicking off inside the window.
	ListTeamIDsBetween(ctx context.Context, from, to time.Time) ([]int64, error)

	// ListSeasonsFinishedSince returns (tournament, season) pairs with at
	// least one match finished after the given time.
	ListSeasonsFinishedSince(ctx context.Context, since time.Time) ([]SeasonRef, error)

	// ListLineupCandidates returns not started matches kicking off before the
	// cutoff whose tournament label is in labels.
	ListLineupCandidates(ctx context.Context, startingBefore time.Time, labels []string) ([]Match, error)
	UpdateLineupInfo(ctx context.Context, matchID int64, info LineupInfo) error

	// ListAlertPreviews returns formatted-alert source rows for matches
	// kicking off inside the window whose tournament label is in labels,
	// ordered by kickoff, then tournament reputation descending.
	ListAlertPreviews(ctx context.Context, from, to time.Time, labels []string) ([]AlertPreview, error)
}
