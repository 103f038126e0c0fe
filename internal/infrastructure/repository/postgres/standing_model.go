package postgres

type standingInsertModel struct {
	TournamentID  int64  `db:"tournament_id"`
	SeasonID      int64  `db:"season_id"`
	TeamID        int64  `db:"team_id"`
	GroupName     string `db:"group_name"`
	Position      int    `db:"position"`
	Matches       int    `db:"matches"`
	Wins          int    `db:"wins"`
	Losses        int    `db:"losses"`
	Draws         int    `db:"draws"`
	ScoresFor     int    `db:"scores_for"`
	ScoresAgainst int    `db:"scores_against"`
	Points        int    `db:"points"`
}
