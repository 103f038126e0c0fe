package postgres

type countryTableModel struct {
	ID   int64  `db:"id"`
	Name string `db:"name"`
}

type countryInsertModel struct {
	ID   int64  `db:"id"`
	Name string `db:"name"`
}
