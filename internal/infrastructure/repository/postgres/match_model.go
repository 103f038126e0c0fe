package postgres

import (
	"database/sql"
	"time"
)

type matchTableModel struct {
	ID           int64         `db:"id"`
	TournamentID int64         `db:"tournament_id"`
	SeasonID     int64         `db:"season_id"`
	HomeTeamID   int64         `db:"home_team_id"`
	AwayTeamID   int64         `db:"away_team_id"`
	HomeName     string        `db:"home_name"`
	AwayName     string        `db:"away_name"`
	Round        sql.NullInt64 `db:"round"`
	Status       string        `db:"status"`
	StartAt      time.Time     `db:"start_at"`
	HomeScore    sql.NullInt64 `db:"home_score"`
	AwayScore    sql.NullInt64 `db:"away_score"`
}

type matchInsertModel struct {
	ID           int64         `db:"id"`
	TournamentID int64         `db:"tournament_id"`
	SeasonID     int64         `db:"season_id"`
	HomeTeamID   int64         `db:"home_team_id"`
	AwayTeamID   int64         `db:"away_team_id"`
	HomeName     string        `db:"home_name"`
	AwayName     string        `db:"away_name"`
	Round        sql.NullInt64 `db:"round"`
	Status       string        `db:"status"`
	StartAt      time.Time     `db:"start_at"`
	HomeScore    sql.NullInt64 `db:"home_score"`
	AwayScore    sql.NullInt64 `db:"away_score"`
}

type alertPreviewRowModel struct {
	MatchID        int64           `db:"match_id"`
	StartAt        time.Time       `db:"start_at"`
	Round          sql.NullInt64   `db:"round"`
	MatchType      string          `db:"match_type"`
	CountryName    string          `db:"country_name"`
	TournamentName string          `db:"tournament_name"`
	Reputation     int64           `db:"reputation"`
	HomeName       string          `db:"home_name"`
	AwayName       string          `db:"away_name"`
	HomePosition   sql.NullInt64   `db:"home_position"`
	AwayPosition   sql.NullInt64   `db:"away_position"`
	HomeScoredAvg  sql.NullFloat64 `db:"home_scored_avg"`
	AwayScoredAvg  sql.NullFloat64 `db:"away_scored_avg"`
	HomeSquadValue float64         `db:"home_squad_value"`
	AwaySquadValue float64         `db:"away_squad_value"`
}

type seasonRefRowModel struct {
	TournamentID int64 `db:"tournament_id"`
	SeasonID     int64 `db:"season_id"`
}
