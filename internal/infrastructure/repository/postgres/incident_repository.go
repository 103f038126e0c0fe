package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	qb "github.com/mzhadan/matchwatch/internal/platform/querybuilder"
)

type incidentClaimModel struct {
	IncidentID int64 `db:"incident_id"`
}

// IncidentLedger records alerted incident ids so each red card is delivered
// exactly once across overlapping poll runs.
type IncidentLedger struct {
	db *sqlx.DB
}

func NewIncidentLedger(db *sqlx.DB) *IncidentLedger {
	return &IncidentLedger{db: db}
}

func (l *IncidentLedger) Claim(ctx context.Context, incidentID int64) (bool, error) {
	query, args, err := qb.InsertModel(
		"processed_incidents",
		incidentClaimModel{IncidentID: incidentID},
		"ON CONFLICT (incident_id) DO NOTHING",
	)
	if err != nil {
		return false, fmt.Errorf("build claim incident query: %w", err)
	}

	res, err := l.db.ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return false, nil
		}
		return false, fmt.Errorf("claim incident id=%d: %w", incidentID, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("count claimed incidents: %w", err)
	}
	return affected > 0, nil
}

func (l *IncidentLedger) Release(ctx context.Context, incidentID int64) error {
	query, args, err := qb.DeleteFrom("processed_incidents").
		Where(qb.Eq("incident_id", incidentID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build release incident query: %w", err)
	}
	if _, err := l.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("release incident id=%d: %w", incidentID, err)
	}
	return nil
}
