package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/mzhadan/matchwatch/internal/domain/standing"
	qb "github.com/mzhadan/matchwatch/internal/platform/querybuilder"
)

type StandingRepository struct {
	db *sqlx.DB
}

func NewStandingRepository(db *sqlx.DB) *StandingRepository {
	return &StandingRepository{db: db}
}

// ReplaceForSeason wipes the season table and reinserts it atomically. A crash
// mid-way rolls the whole season back to the previous snapshot.
func (r *StandingRepository) ReplaceForSeason(ctx context.Context, tournamentID, seasonID int64, rows []standing.Standing) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx replace standings: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	clearQuery, clearArgs, err := qb.DeleteFrom("standings").
		Where(
			qb.Eq("tournament_id", tournamentID),
			qb.Eq("season_id", seasonID),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build clear standings query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, clearQuery, clearArgs...); err != nil {
		return fmt.Errorf("clear standings: %w", err)
	}

	for _, item := range rows {
		groupName := strings.TrimSpace(item.GroupName)
		if groupName == "" {
			groupName = standing.DefaultGroupName
		}

		insertModel := standingInsertModel{
			TournamentID:  tournamentID,
			SeasonID:      seasonID,
			TeamID:        item.TeamID,
			GroupName:     groupName,
			Position:      item.Position,
			Matches:       item.Matches,
			Wins:          item.Wins,
			Losses:        item.Losses,
			Draws:         item.Draws,
			ScoresFor:     item.ScoresFor,
			ScoresAgainst: item.ScoresAgainst,
			Points:        item.Points,
		}
		query, args, err := qb.InsertModel("standings", insertModel, "ON CONFLICT DO NOTHING")
		if err != nil {
			return fmt.Errorf("build insert standing query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert standing team=%d season=%d: %w", item.TeamID, seasonID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace standings tx: %w", err)
	}
	return nil
}
