package postgres

import "database/sql"

type playerTableModel struct {
	PlayerID    int64         `db:"player_id"`
	TeamID      int64         `db:"team_id"`
	Name        string        `db:"name"`
	Position    string        `db:"position"`
	ShirtNumber sql.NullInt64 `db:"shirt_number"`
	MarketValue float64       `db:"market_value"`
	DateOfBirth sql.NullTime  `db:"date_of_birth"`
}

type playerInsertModel struct {
	PlayerID    int64         `db:"player_id"`
	TeamID      int64         `db:"team_id"`
	Name        string        `db:"name"`
	Position    string        `db:"position"`
	ShirtNumber sql.NullInt64 `db:"shirt_number"`
	MarketValue float64       `db:"market_value"`
	DateOfBirth sql.NullTime  `db:"date_of_birth"`
}
