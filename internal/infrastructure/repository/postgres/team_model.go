package postgres

import "database/sql"

type teamTableModel struct {
	ID              int64         `db:"id"`
	Name            string        `db:"name"`
	ShortName       string        `db:"short_name"`
	CountryName     string        `db:"country_name"`
	TournamentID    sql.NullInt64 `db:"tournament_id"`
	UserCount       int64         `db:"user_count"`
	StadiumCapacity int64         `db:"stadium_capacity"`
	SquadValue      float64       `db:"squad_value"`
	Reputation      float64       `db:"reputation"`
}

type teamInsertModel struct {
	ID              int64         `db:"id"`
	Name            string        `db:"name"`
	ShortName       string        `db:"short_name"`
	CountryName     string        `db:"country_name"`
	TournamentID    sql.NullInt64 `db:"tournament_id"`
	UserCount       int64         `db:"user_count"`
	StadiumCapacity int64         `db:"stadium_capacity"`
	SquadValue      float64       `db:"squad_value"`
}
