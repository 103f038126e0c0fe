package standing

// DefaultGroupName is used when upstream sends no group split.
const DefaultGroupName = "Overall"

// Standing is one table row of a tournament season, scoped to a group.
type Standing struct {
	TournamentID  int64
	SeasonID      int64
	TeamID        int64
	GroupName     string
	Position      int
	Matches       int
	Wins          int
	Losses        int
	Draws         int
	ScoresFor     int
	ScoresAgainst int
	Points        int
}
