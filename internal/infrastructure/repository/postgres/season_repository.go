package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/mzhadan/matchwatch/internal/domain/season"
	qb "github.com/mzhadan/matchwatch/internal/platform/querybuilder"
)

type SeasonRepository struct {
	db *sqlx.DB
}

func NewSeasonRepository(db *sqlx.DB) *SeasonRepository {
	return &SeasonRepository{db: db}
}

func (r *SeasonRepository) List(ctx context.Context) ([]season.Season, error) {
	query, args, err := qb.Select("id", "tournament_id", "name", "year").
		From("seasons").
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list seasons query: %w", err)
	}

	var rows []seasonTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list seasons: %w", err)
	}

	out := make([]season.Season, 0, len(rows))
	for _, row := range rows {
		out = append(out, season.Season{
			ID:           row.ID,
			TournamentID: row.TournamentID,
			Name:         row.Name,
			Year:         row.Year,
		})
	}
	return out, nil
}

func (r *SeasonRepository) InsertBatch(ctx context.Context, items []season.Season) error {
	models := make([]any, 0, len(items))
	for _, item := range items {
		models = append(models, seasonInsertModel{
			ID:           item.ID,
			TournamentID: item.TournamentID,
			Name:         item.Name,
			Year:         item.Year,
		})
	}
	return insertModels(ctx, r.db, "seasons", models)
}

func (r *SeasonRepository) UpdateBatch(ctx context.Context, items []season.Season) error {
	for _, item := range items {
		query, args, err := qb.Update("seasons").
			Set("tournament_id", item.TournamentID).
			Set("name", item.Name).
			Set("year", item.Year).
			Where(qb.Eq("id", item.ID)).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build update season query: %w", err)
		}
		if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("update season id=%d: %w", item.ID, err)
		}
	}
	return nil
}
