package postgres

type seasonTableModel struct {
	ID           int64  `db:"id"`
	TournamentID int64  `db:"tournament_id"`
	Name         string `db:"name"`
	Year         string `db:"year"`
}

type seasonInsertModel struct {
	ID           int64  `db:"id"`
	TournamentID int64  `db:"tournament_id"`
	Name         string `db:"name"`
	Year         string `db:"year"`
}
