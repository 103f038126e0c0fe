package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/mzhadan/matchwatch/internal/domain/country"
	qb "github.com/mzhadan/matchwatch/internal/platform/querybuilder"
)

type CountryRepository struct {
	db *sqlx.DB
}

func NewCountryRepository(db *sqlx.DB) *CountryRepository {
	return &CountryRepository{db: db}
}

func (r *CountryRepository) List(ctx context.Context) ([]country.Country, error) {
	query, args, err := qb.Select("id", "name").From("countries").OrderBy("id").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list countries query: %w", err)
	}

	var rows []countryTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list countries: %w", err)
	}

	out := make([]country.Country, 0, len(rows))
	for _, row := range rows {
		out = append(out, country.Country{ID: row.ID, Name: row.Name})
	}
	return out, nil
}

func (r *CountryRepository) InsertBatch(ctx context.Context, items []country.Country) error {
	models := make([]any, 0, len(items))
	for _, item := range items {
		models = append(models, countryInsertModel{ID: item.ID, Name: item.Name})
	}
	return insertModels(ctx, r.db, "countries", models)
}

func (r *CountryRepository) UpdateBatch(ctx context.Context, items []country.Country) error {
	for _, item := range items {
		query, args, err := qb.Update("countries").
			Set("name", item.Name).
			Where(qb.Eq("id", item.ID)).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build update country query: %w", err)
		}
		if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("update country id=%d: %w", item.ID, err)
		}
	}
	return nil
}
