package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/mzhadan/matchwatch/internal/domain/player"
	qb "github.com/mzhadan/matchwatch/internal/platform/querybuilder"
)

var playerColumns = []string{
	"player_id", "team_id", "name", "position", "shirt_number",
	"market_value", "date_of_birth",
}

type PlayerRepository struct {
	db *sqlx.DB
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) ListByTeamIDs(ctx context.Context, teamIDs []int64) ([]player.Player, error) {
	if len(teamIDs) == 0 {
		return nil, nil
	}

	query, args, err := qb.Select(playerColumns...).From("players").
		Where(qb.In("team_id", int64sToAny(teamIDs))).
		OrderBy("team_id", "player_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list players query: %w", err)
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, player.Player{
			ID:          row.PlayerID,
			TeamID:      row.TeamID,
			Name:        row.Name,
			Position:    row.Position,
			ShirtNumber: nullInt64ToIntPtr(row.ShirtNumber),
			MarketValue: row.MarketValue,
			DateOfBirth: nullTimeToTimePtr(row.DateOfBirth),
		})
	}
	return out, nil
}

func (r *PlayerRepository) InsertBatch(ctx context.Context, items []player.Player) error {
	models := make([]any, 0, len(items))
	for _, item := range items {
		models = append(models, playerInsertModel{
			PlayerID:    item.ID,
			TeamID:      item.TeamID,
			Name:        item.Name,
			Position:    item.Position,
			ShirtNumber: intPtrToNullInt64(item.ShirtNumber),
			MarketValue: item.MarketValue,
			DateOfBirth: timePtrToNullTime(item.DateOfBirth),
		})
	}
	return insertModels(ctx, r.db, "players", models)
}

func (r *PlayerRepository) UpdateBatch(ctx context.Context, items []player.Player) error {
	for _, item := range items {
		query, args, err := qb.Update("players").
			Set("name", item.Name).
			Set("position", item.Position).
			Set("shirt_number", intPtrToNullInt64(item.ShirtNumber)).
			Set("market_value", item.MarketValue).
			Set("date_of_birth", timePtrToNullTime(item.DateOfBirth)).
			Where(
				qb.Eq("player_id", item.ID),
				qb.Eq("team_id", item.TeamID),
			).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build update player query: %w", err)
		}
		if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("update player id=%d team=%d: %w", item.ID, item.TeamID, err)
		}
	}
	return nil
}
