package postgres

import (
	"database/sql"
	"time"
)

type tournamentTableModel struct {
	ID          int64        `db:"id"`
	Name        string       `db:"name"`
	Gender      string       `db:"gender"`
	CountryID   int64        `db:"country_id"`
	CountryName string       `db:"country_name"`
	Tier        int          `db:"tier"`
	UserCount   int64        `db:"user_count"`
	Reputation  int64        `db:"reputation"`
	Label       string       `db:"reputation_label"`
	MatchType   string       `db:"match_type"`
	StartDate   sql.NullTime `db:"start_date"`
	EndDate     sql.NullTime `db:"end_date"`
	CreatedAt   time.Time    `db:"created_at"`
	UpdatedAt   time.Time    `db:"updated_at"`
}

type tournamentInsertModel struct {
	ID          int64        `db:"id"`
	Name        string       `db:"name"`
	Gender      string       `db:"gender"`
	CountryID   int64        `db:"country_id"`
	CountryName string       `db:"country_name"`
	Tier        int          `db:"tier"`
	UserCount   int64        `db:"user_count"`
	Reputation  int64        `db:"reputation"`
	Label       string       `db:"reputation_label"`
	MatchType   string       `db:"match_type"`
	StartDate   sql.NullTime `db:"start_date"`
	EndDate     sql.NullTime `db:"end_date"`
}
