package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/mzhadan/matchwatch/internal/domain/team"
	qb "github.com/mzhadan/matchwatch/internal/platform/querybuilder"
)

var teamColumns = []string{
	"id", "name", "short_name", "country_name", "tournament_id",
	"user_count", "stadium_capacity", "squad_value", "reputation",
}

// Team reputation weights: follower count, stadium size, tournament strength.
const teamReputationExpr = `ROUND((user_count * 0.5 + stadium_capacity * 0.3 + COALESCE((SELECT t.reputation FROM tournaments t WHERE t.id = teams.tournament_id), 0) * 0.2)::numeric, 3)`

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) ListByIDs(ctx context.Context, ids []int64) ([]team.Team, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query, args, err := qb.Select(teamColumns...).From("teams").
		Where(qb.In("id", int64sToAny(ids))).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list teams query: %w", err)
	}

	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}

	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, team.Team{
			ID:              row.ID,
			Name:            row.Name,
			ShortName:       row.ShortName,
			CountryName:     row.CountryName,
			TournamentID:    nullInt64ToInt64Ptr(row.TournamentID),
			UserCount:       row.UserCount,
			StadiumCapacity: row.StadiumCapacity,
			SquadValue:      row.SquadValue,
			Reputation:      row.Reputation,
		})
	}
	return out, nil
}

func (r *TeamRepository) InsertBatch(ctx context.Context, items []team.Team) error {
	models := make([]any, 0, len(items))
	for _, item := range items {
		models = append(models, teamInsertModel{
			ID:              item.ID,
			Name:            item.Name,
			ShortName:       item.ShortName,
			CountryName:     item.CountryName,
			TournamentID:    int64PtrToNullInt64(item.TournamentID),
			UserCount:       item.UserCount,
			StadiumCapacity: item.StadiumCapacity,
			SquadValue:      item.SquadValue,
		})
	}
	return insertModels(ctx, r.db, "teams", models)
}

func (r *TeamRepository) UpdateBatch(ctx context.Context, items []team.Team) error {
	for _, item := range items {
		query, args, err := qb.Update("teams").
			Set("name", item.Name).
			Set("short_name", item.ShortName).
			Set("country_name", item.CountryName).
			Set("tournament_id", int64PtrToNullInt64(item.TournamentID)).
			Set("user_count", item.UserCount).
			Set("stadium_capacity", item.StadiumCapacity).
			Set("squad_value", item.SquadValue).
			Where(qb.Eq("id", item.ID)).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build update team query: %w", err)
		}
		if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("update team id=%d: %w", item.ID, err)
		}
	}
	return nil
}

func (r *TeamRepository) RecomputeReputations(ctx context.Context) (int64, error) {
	query, args, err := qb.Update("teams").
		SetExpr("reputation", teamReputationExpr).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build recompute team reputations query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("recompute team reputations: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("count recomputed teams: %w", err)
	}
	return affected, nil
}
