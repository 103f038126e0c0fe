package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/mzhadan/matchwatch/internal/domain/match"
	qb "github.com/mzhadan/matchwatch/internal/platform/querybuilder"
)

var matchColumns = []string{
	"id", "tournament_id", "season_id", "home_team_id", "away_team_id",
	"home_name", "away_name", "round", "status", "start_at",
	"home_score", "away_score",
}

const listTeamIDsBetweenSQL = `
SELECT DISTINCT team_id FROM (
    SELECT home_team_id AS team_id FROM matches WHERE start_at >= $1 AND start_at < $2
    UNION
    SELECT away_team_id AS team_id FROM matches WHERE start_at >= $1 AND start_at < $2
) ids
ORDER BY team_id`

const listSeasonsFinishedSinceSQL = `
SELECT DISTINCT tournament_id, season_id
FROM matches
WHERE status = 'finished' AND start_at >= $1
ORDER BY tournament_id, season_id`

const listLineupCandidatesSQL = `
SELECT m.id, m.tournament_id, m.season_id, m.home_team_id, m.away_team_id,
       m.home_name, m.away_name, m.round, m.status, m.start_at,
       m.home_score, m.away_score
FROM matches m
JOIN tournaments t ON t.id = m.tournament_id
WHERE m.status = 'notstarted'
  AND m.start_at < $1
  AND t.reputation_label = ANY($2)
ORDER BY m.start_at, m.id`

const listAlertPreviewsSQL = `
SELECT m.id AS match_id,
       m.start_at,
       m.round,
       t.match_type,
       t.country_name,
       t.name AS tournament_name,
       t.reputation,
       m.home_name,
       m.away_name,
       sh.position AS home_position,
       sa.position AS away_position,
       CASE WHEN sh.matches > 0 THEN ROUND(sh.scores_for::numeric / sh.matches, 1) END AS home_scored_avg,
       CASE WHEN sa.matches > 0 THEN ROUND(sa.scores_for::numeric / sa.matches, 1) END AS away_scored_avg,
       COALESCE(th.squad_value, 0) AS home_squad_value,
       COALESCE(ta.squad_value, 0) AS away_squad_value
FROM matches m
JOIN tournaments t ON t.id = m.tournament_id
LEFT JOIN standings sh ON sh.tournament_id = m.tournament_id AND sh.season_id = m.season_id
    AND sh.team_id = m.home_team_id AND sh.group_name = 'Overall'
LEFT JOIN standings sa ON sa.tournament_id = m.tournament_id AND sa.season_id = m.season_id
    AND sa.team_id = m.away_team_id AND sa.group_name = 'Overall'
LEFT JOIN teams th ON th.id = m.home_team_id
LEFT JOIN teams ta ON ta.id = m.away_team_id
WHERE m.status = 'notstarted'
  AND m.start_at >= $1
  AND m.start_at < $2
  AND t.reputation_label = ANY($3)
ORDER BY m.start_at, t.reputation DESC, m.id`

type MatchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) ListBetween(ctx context.Context, from, to time.Time) ([]match.Match, error) {
	query, args, err := qb.Select(matchColumns...).From("matches").
		Where(qb.Expr("start_at >= ? AND start_at < ?", from, to)).
		OrderBy("start_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list matches query: %w", err)
	}

	var rows []matchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	return matchRowsToDomain(rows), nil
}

func (r *MatchRepository) InsertBatch(ctx context.Context, items []match.Match) error {
	models := make([]any, 0, len(items))
	for _, item := range items {
		models = append(models, matchInsertModel{
			ID:           item.ID,
			TournamentID: item.TournamentID,
			SeasonID:     item.SeasonID,
			HomeTeamID:   item.HomeTeamID,
			AwayTeamID:   item.AwayTeamID,
			HomeName:     item.HomeName,
			AwayName:     item.AwayName,
			Round:        intPtrToNullInt64(item.Round),
			Status:       match.NormalizeStatus(item.Status),
			StartAt:      item.StartAt,
			HomeScore:    intPtrToNullInt64(item.HomeScore),
			AwayScore:    intPtrToNullInt64(item.AwayScore),
		})
	}
	return insertModels(ctx, r.db, "matches", models)
}

func (r *MatchRepository) UpdateBatch(ctx context.Context, items []match.Match) error {
	for _, item := range items {
		query, args, err := qb.Update("matches").
			Set("season_id", item.SeasonID).
			Set("home_team_id", item.HomeTeamID).
			Set("away_team_id", item.AwayTeamID).
			Set("home_name", item.HomeName).
			Set("away_name", item.AwayName).
			Set("round", intPtrToNullInt64(item.Round)).
			Set("status", match.NormalizeStatus(item.Status)).
			Set("start_at", item.StartAt).
			Set("home_score", intPtrToNullInt64(item.HomeScore)).
			Set("away_score", intPtrToNullInt64(item.AwayScore)).
			Where(qb.Eq("id", item.ID)).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build update match query: %w", err)
		}
		if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("update match id=%d: %w", item.ID, err)
		}
	}
	return nil
}

func (r *MatchRepository) DeleteStale(ctx context.Context, unfinishedBefore time.Time) (int64, error) {
	query, args, err := qb.DeleteFrom("matches").
		Where(qb.Expr(
			"(status IN (?, ?) OR (start_at < ? AND status != ?))",
			match.StatusCanceled, match.StatusPostponed, unfinishedBefore, match.StatusFinished,
		)).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build delete stale matches query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("delete stale matches: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("count deleted matches: %w", err)
	}
	return affected, nil
}

func (r *MatchRepository) ListRefreshable(ctx context.Context, startedBefore time.Time) ([]match.Match, error) {
	query, args, err := qb.Select(matchColumns...).From("matches").
		Where(qb.Expr(
			"(status = ? OR (status = ? AND start_at <= ?))",
			match.StatusInProgress, match.StatusNotStarted, startedBefore,
		)).
		OrderBy("start_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list refreshable matches query: %w", err)
	}

	var rows []matchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list refreshable matches: %w", err)
	}
	return matchRowsToDomain(rows), nil
}

func (r *MatchRepository) ListTeamIDsBetween(ctx context.Context, from, to time.Time) ([]int64, error) {
	var ids []int64
	if err := r.db.SelectContext(ctx, &ids, listTeamIDsBetweenSQL, from, to); err != nil {
		return nil, fmt.Errorf("list team ids in window: %w", err)
	}
	return ids, nil
}

func (r *MatchRepository) ListSeasonsFinishedSince(ctx context.Context, since time.Time) ([]match.SeasonRef, error) {
	var rows []seasonRefRowModel
	if err := r.db.SelectContext(ctx, &rows, listSeasonsFinishedSinceSQL, since); err != nil {
		return nil, fmt.Errorf("list recently finished seasons: %w", err)
	}

	out := make([]match.SeasonRef, 0, len(rows))
	for _, row := range rows {
		out = append(out, match.SeasonRef{TournamentID: row.TournamentID, SeasonID: row.SeasonID})
	}
	return out, nil
}

func (r *MatchRepository) ListLineupCandidates(ctx context.Context, startingBefore time.Time, labels []string) ([]match.Match, error) {
	if len(labels) == 0 {
		return nil, nil
	}

	var rows []matchTableModel
	if err := r.db.SelectContext(ctx, &rows, listLineupCandidatesSQL, startingBefore, pq.Array(labels)); err != nil {
		return nil, fmt.Errorf("list lineup candidates: %w", err)
	}
	return matchRowsToDomain(rows), nil
}

func (r *MatchRepository) UpdateLineupInfo(ctx context.Context, matchID int64, info match.LineupInfo) error {
	query, args, err := qb.Update("matches").
		Set("home_lineup_value", info.HomeValue).
		Set("away_lineup_value", info.AwayValue).
		Set("home_avg_rating", info.HomeAvgRating).
		Set("away_avg_rating", info.AwayAvgRating).
		Where(qb.Eq("id", matchID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update lineup info query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update lineup info match=%d: %w", matchID, err)
	}
	return nil
}

func (r *MatchRepository) ListAlertPreviews(ctx context.Context, from, to time.Time, labels []string) ([]match.AlertPreview, error) {
	if len(labels) == 0 {
		return nil, nil
	}

	var rows []alertPreviewRowModel
	if err := r.db.SelectContext(ctx, &rows, listAlertPreviewsSQL, from, to, pq.Array(labels)); err != nil {
		return nil, fmt.Errorf("list alert previews: %w", err)
	}

	out := make([]match.AlertPreview, 0, len(rows))
	for _, row := range rows {
		out = append(out, match.AlertPreview{
			MatchID:        row.MatchID,
			StartAt:        row.StartAt,
			Round:          nullInt64ToIntPtr(row.Round),
			MatchType:      row.MatchType,
			CountryName:    row.CountryName,
			TournamentName: row.TournamentName,
			Reputation:     row.Reputation,
			HomeName:       row.HomeName,
			AwayName:       row.AwayName,
			HomePosition:   nullInt64ToIntPtr(row.HomePosition),
			AwayPosition:   nullInt64ToIntPtr(row.AwayPosition),
			HomeScoredAvg:  nullFloat64ToFloat64Ptr(row.HomeScoredAvg),
			AwayScoredAvg:  nullFloat64ToFloat64Ptr(row.AwayScoredAvg),
			HomeSquadValue: row.HomeSquadValue,
			AwaySquadValue: row.AwaySquadValue,
		})
	}
	return out, nil
}

func matchRowsToDomain(rows []matchTableModel) []match.Match {
	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		out = append(out, match.Match{
			ID:           row.ID,
			TournamentID: row.TournamentID,
			SeasonID:     row.SeasonID,
			HomeTeamID:   row.HomeTeamID,
			AwayTeamID:   row.AwayTeamID,
			HomeName:     row.HomeName,
			AwayName:     row.AwayName,
			Round:        nullInt64ToIntPtr(row.Round),
			Status:       row.Status,
			StartAt:      row.StartAt,
			HomeScore:    nullInt64ToIntPtr(row.HomeScore),
			AwayScore:    nullInt64ToIntPtr(row.AwayScore),
		})
	}
	return out
}
