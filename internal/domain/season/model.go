package season

// Season is the most recent season of a tournament. Upstream returns seasons
// newest first; only the head of that list is tracked.
type Season struct {
	ID           int64
	TournamentID int64
	Name         string
	Year         string
}
