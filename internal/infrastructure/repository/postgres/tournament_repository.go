package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/mzhadan/matchwatch/internal/domain/tournament"
	qb "github.com/mzhadan/matchwatch/internal/platform/querybuilder"
)

var tournamentColumns = []string{
	"id", "name", "gender", "country_id", "country_name", "tier",
	"user_count", "reputation", "reputation_label", "match_type",
	"start_date", "end_date", "created_at", "updated_at",
}

type TournamentRepository struct {
	db *sqlx.DB
}

func NewTournamentRepository(db *sqlx.DB) *TournamentRepository {
	return &TournamentRepository{db: db}
}

func (r *TournamentRepository) List(ctx context.Context) ([]tournament.Tournament, error) {
	query, args, err := qb.Select(tournamentColumns...).From("tournaments").OrderBy("id").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list tournaments query: %w", err)
	}

	var rows []tournamentTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list tournaments: %w", err)
	}

	out := make([]tournament.Tournament, 0, len(rows))
	for _, row := range rows {
		out = append(out, tournament.Tournament{
			ID:          row.ID,
			Name:        row.Name,
			Gender:      row.Gender,
			CountryID:   row.CountryID,
			CountryName: row.CountryName,
			Tier:        row.Tier,
			UserCount:   row.UserCount,
			Reputation:  row.Reputation,
			Label:       tournament.ReputationLabel(row.Label),
			MatchType:   tournament.MatchType(row.MatchType),
			StartDate:   nullTimeToTimePtr(row.StartDate),
			EndDate:     nullTimeToTimePtr(row.EndDate),
		})
	}
	return out, nil
}

func (r *TournamentRepository) InsertBatch(ctx context.Context, items []tournament.Tournament) error {
	models := make([]any, 0, len(items))
	for _, item := range items {
		models = append(models, tournamentInsertModel{
			ID:          item.ID,
			Name:        item.Name,
			Gender:      item.Gender,
			CountryID:   item.CountryID,
			CountryName: item.CountryName,
			Tier:        item.Tier,
			UserCount:   item.UserCount,
			Reputation:  item.Reputation,
			Label:       string(item.Label),
			MatchType:   string(item.MatchType),
			StartDate:   timePtrToNullTime(item.StartDate),
			EndDate:     timePtrToNullTime(item.EndDate),
		})
	}
	return insertModels(ctx, r.db, "tournaments", models)
}

func (r *TournamentRepository) UpdateBatch(ctx context.Context, items []tournament.Tournament) error {
	for _, item := range items {
		query, args, err := qb.Update("tournaments").
			Set("name", item.Name).
			Set("gender", item.Gender).
			Set("country_id", item.CountryID).
			Set("country_name", item.CountryName).
			Set("tier", item.Tier).
			Set("user_count", item.UserCount).
			Set("reputation", item.Reputation).
			Set("reputation_label", string(item.Label)).
			Set("match_type", string(item.MatchType)).
			Set("start_date", timePtrToNullTime(item.StartDate)).
			Set("end_date", timePtrToNullTime(item.EndDate)).
			SetExpr("updated_at", "NOW()").
			Where(qb.Eq("id", item.ID)).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build update tournament query: %w", err)
		}
		if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("update tournament id=%d: %w", item.ID, err)
		}
	}
	return nil
}

func (r *TournamentRepository) DeleteEnded(ctx context.Context, before time.Time) (int64, error) {
	query, args, err := qb.DeleteFrom("tournaments").
		Where(qb.Expr("end_date IS NOT NULL AND end_date < ?", before)).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build delete ended tournaments query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("delete ended tournaments: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("count deleted tournaments: %w", err)
	}
	return affected, nil
}
